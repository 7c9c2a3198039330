package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/food-order-api/internal/domains/orders/adapters/http/mapper"
	types "github.com/Apurer/food-order-api/internal/domains/orders/application/types"
	"github.com/Apurer/food-order-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/food-order-api/internal/shared/errors"
	"github.com/Apurer/food-order-api/internal/shared/identity"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

// OrderAPI wires HTTP transport with the orders bounded context service.
type OrderAPI struct {
	service ports.Service
}

func NewOrderAPI(service ports.Service) *OrderAPI {
	return &OrderAPI{service: service}
}

// Register mounts the order routes under a store-scoped group. Every route but the
// confirmed count needs the caller identity.
func (api *OrderAPI) Register(stores gin.IRouter) {
	orders := stores.Group("/:storeId/orders", identity.RequirePrincipal())
	orders.POST("", api.CreateOrder)
	orders.GET("", api.GetOrders)
	orders.GET("/:orderId", api.GetOrderDetail)
	orders.POST("/:orderId/cancel", api.CancelOrder)

	stores.GET("/:storeId/confirmed-orders/count", api.GetCount)
}

// Post /api/stores/:storeId/orders
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	var payload ordermapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	detail, err := api.service.CreateOrder(c.Request.Context(), principal, ordermapper.ToCreateOrderInput(storeID, payload))
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDetail(detail))
}

// Post /api/stores/:storeId/orders/:orderId/cancel
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := parseOrderParams(c)
	if !ok {
		return
	}
	detail, err := api.service.CancelOrder(c.Request.Context(), principal, id)
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDetail(detail))
}

// Get /api/stores/:storeId/orders/:orderId
func (api *OrderAPI) GetOrderDetail(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := parseOrderParams(c)
	if !ok {
		return
	}
	detail, err := api.service.GetOrderDetail(c.Request.Context(), principal, id)
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDetail(detail))
}

// Get /api/stores/:storeId/orders?page=&size=
// Only the store owner may list orders.
func (api *OrderAPI) GetOrders(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	page, err := pagination.Parse(c.Query("page"), c.Query("size"))
	if err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	result, err := api.service.GetOrders(c.Request.Context(), principal, types.ListOrdersInput{StoreID: storeID, Page: page})
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromPage(result))
}

// Get /api/stores/:storeId/confirmed-orders/count
func (api *OrderAPI) GetCount(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	count, err := api.service.GetCount(c.Request.Context(), storeID)
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromCount(count))
}

func principalFrom(c *gin.Context) (identity.Principal, bool) {
	principal, ok := identity.FromGin(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(identity.ErrAnonymous.Error()))
		return identity.Principal{}, false
	}
	return principal, true
}

func parseOrderParams(c *gin.Context) (types.OrderIdentifier, bool) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return types.OrderIdentifier{}, false
	}
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return types.OrderIdentifier{}, false
	}
	return types.OrderIdentifier{StoreID: storeID, OrderID: orderID}, true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		apierrors.DefaultResponder.BadRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
