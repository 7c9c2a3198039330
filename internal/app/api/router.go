package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	menuhandler "github.com/Apurer/food-order-api/internal/domains/menus/adapters/http/handler"
	menuports "github.com/Apurer/food-order-api/internal/domains/menus/ports"
	orderhandler "github.com/Apurer/food-order-api/internal/domains/orders/adapters/http/handler"
	orderports "github.com/Apurer/food-order-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/food-order-api/internal/shared/errors"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Menus  menuports.Service
	Orders orderports.Service
}

// NewRouter builds the gin engine with every store-scoped route mounted under /api/stores.
func NewRouter(serviceName string, services Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if serviceName != "" {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.NoRoute(func(c *gin.Context) {
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail("no route for "+c.Request.Method+" "+c.Request.URL.Path))
	})

	stores := router.Group("/api/stores")
	menuhandler.NewMenuAPI(services.Menus).Register(stores)
	orderhandler.NewOrderAPI(services.Orders).Register(stores)
	return router
}
