package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/food-order-api/internal/app/bootstrap"
	menumapper "github.com/Apurer/food-order-api/internal/domains/menus/adapters/http/mapper"
	ordermapper "github.com/Apurer/food-order-api/internal/domains/orders/adapters/http/mapper"
	platformobservability "github.com/Apurer/food-order-api/internal/platform/observability"
	"github.com/Apurer/food-order-api/internal/shared/identity"
)

func newDemoRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := bootstrap.Config{ImagePath: "/images", SeedDemoData: true}
	deps, cleanup, err := bootstrap.Build(context.Background(), cfg, platformobservability.NewNop(), bootstrap.Options{Fs: afero.NewMemMapFs()})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewRouter("", Services{Menus: deps.MenuService(), Orders: deps.OrderService()})
}

func TestRouter_Health(t *testing.T) {
	router := newDemoRouter(t)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownRouteIsProblem(t *testing.T) {
	router := newDemoRouter(t)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestRouter_BrowseThenOrder(t *testing.T) {
	router := newDemoRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stores/1/menus", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var menus menumapper.MenuPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &menus))
	require.NotEmpty(t, menus.Items)
	menu := menus.Items[0]

	body := fmt.Sprintf(`{"totalPrice":%d,"items":[{"menuId":%d,"quantity":1}]}`, menu.Price, menu.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/stores/1/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(identity.HeaderMemberEmail, bootstrap.DemoCustomerEmail)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order ordermapper.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, menu.Price, order.TotalPrice)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stores/1/confirmed-orders/count", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
