package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	membermemory "github.com/Apurer/food-order-api/internal/domains/members/adapters/memory"
	memberdomain "github.com/Apurer/food-order-api/internal/domains/members/domain"
	menumemory "github.com/Apurer/food-order-api/internal/domains/menus/adapters/memory"
	menudomain "github.com/Apurer/food-order-api/internal/domains/menus/domain"
	ordermapper "github.com/Apurer/food-order-api/internal/domains/orders/adapters/http/mapper"
	ordermemory "github.com/Apurer/food-order-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/food-order-api/internal/domains/orders/application"
	storememory "github.com/Apurer/food-order-api/internal/domains/stores/adapters/memory"
	storedomain "github.com/Apurer/food-order-api/internal/domains/stores/domain"
	apierrors "github.com/Apurer/food-order-api/internal/shared/errors"
	"github.com/Apurer/food-order-api/internal/shared/identity"
)

const (
	ownerEmail    = "owner@example.com"
	customerEmail = "customer@example.com"
)

type orderServer struct {
	router  *gin.Engine
	storeID int64
	menuID  int64
	option  int64
}

func newOrderServer(t *testing.T) *orderServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	members := membermemory.NewRepository()
	owner, err := memberdomain.NewMember(ownerEmail, "owner", memberdomain.RoleOwner)
	require.NoError(t, err)
	owner, err = members.Save(ctx, owner)
	require.NoError(t, err)
	customer, err := memberdomain.NewMember(customerEmail, "customer", memberdomain.RoleCustomer)
	require.NoError(t, err)
	_, err = members.Save(ctx, customer)
	require.NoError(t, err)

	stores := storememory.NewRepository()
	store, err := storedomain.NewStore("S1", owner.ID)
	require.NoError(t, err)
	store, err = stores.Save(ctx, store)
	require.NoError(t, err)

	menus := menumemory.NewRepository()
	menu, err := menudomain.NewMenu(store.ID, "M1", "", 10000, "/images/no_image.jpg")
	require.NoError(t, err)
	menu, err = menus.Save(ctx, menu)
	require.NoError(t, err)
	options := menumemory.NewOptionRepository()
	option, err := menudomain.NewOption(menu.ID, "O1", 1000)
	require.NoError(t, err)
	option, err = options.Save(ctx, option)
	require.NoError(t, err)

	svc := application.NewService(application.Repositories{
		Members: members,
		Stores:  stores,
		Menus:   menus,
		Options: options,
		Orders:  ordermemory.NewRepository(),
	})
	router := gin.New()
	NewOrderAPI(svc).Register(router.Group("/api/stores"))
	return &orderServer{router: router, storeID: store.ID, menuID: menu.ID, option: option.ID}
}

func (s *orderServer) do(method, path, email, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		req.Header.Set(identity.HeaderMemberEmail, email)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *orderServer) ordersPath() string {
	return fmt.Sprintf("/api/stores/%d/orders", s.storeID)
}

func (s *orderServer) cart(total int64) string {
	return fmt.Sprintf(`{"totalPrice":%d,"items":[{"menuId":%d,"quantity":2,"optionIds":[%d]}]}`, total, s.menuID, s.option)
}

func (s *orderServer) placeOrder(t *testing.T) ordermapper.Order {
	t.Helper()
	rec := s.do(http.MethodPost, s.ordersPath(), customerEmail, s.cart(21000))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order ordermapper.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	return order
}

func problemCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem.Code
}

func TestOrderAPI_CreateOrder(t *testing.T) {
	srv := newOrderServer(t)

	order := srv.placeOrder(t)

	assert.Equal(t, "PLACED", order.Status)
	assert.Equal(t, int64(21000), order.TotalPrice)
	assert.Equal(t, "S1", order.StoreName)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(21000), order.Lines[0].Subtotal)
	require.Len(t, order.Lines[0].Options, 1)
	assert.Equal(t, "O1", order.Lines[0].Options[0].Name)
}

func TestOrderAPI_CreateOrderRejectsWrongTotal(t *testing.T) {
	srv := newOrderServer(t)

	rec := srv.do(http.MethodPost, srv.ordersPath(), customerEmail, srv.cart(20000))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_TOTAL_PRICE", problemCode(t, rec))
}

func TestOrderAPI_CreateOrderValidatesPayload(t *testing.T) {
	srv := newOrderServer(t)

	rec := srv.do(http.MethodPost, srv.ordersPath(), customerEmail, `{"totalPrice":100,"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, srv.ordersPath(), customerEmail, fmt.Sprintf(`{"items":[{"menuId":%d,"quantity":1}]}`, srv.menuID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, srv.ordersPath(), customerEmail,
		fmt.Sprintf(`{"totalPrice":10000,"items":[{"menuId":%d,"quantity":%d}]}`, srv.menuID, 1<<60+1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, srv.ordersPath(), customerEmail,
		fmt.Sprintf(`{"totalPrice":10010000,"items":[{"menuId":%d,"quantity":1001}]}`, srv.menuID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodGet, srv.ordersPath()+"?page=92233720368547759&size=100", ownerEmail, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderAPI_RequiresIdentity(t *testing.T) {
	srv := newOrderServer(t)

	rec := srv.do(http.MethodPost, srv.ordersPath(), "", srv.cart(21000))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderAPI_UnknownMemberIsNotFound(t *testing.T) {
	srv := newOrderServer(t)

	rec := srv.do(http.MethodPost, srv.ordersPath(), "ghost@example.com", srv.cart(21000))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "MEMBER_NOT_FOUND", problemCode(t, rec))
}

func TestOrderAPI_CancelTwiceConflicts(t *testing.T) {
	srv := newOrderServer(t)
	order := srv.placeOrder(t)
	path := fmt.Sprintf("%s/%d/cancel", srv.ordersPath(), order.ID)

	rec := srv.do(http.MethodPost, path, customerEmail, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var canceled ordermapper.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &canceled))
	assert.Equal(t, "CANCELED", canceled.Status)

	rec = srv.do(http.MethodPost, path, customerEmail, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ORDER_ALREADY_CANCELED", problemCode(t, rec))
}

func TestOrderAPI_DetailOfAnotherMemberIsForbidden(t *testing.T) {
	srv := newOrderServer(t)
	order := srv.placeOrder(t)
	path := fmt.Sprintf("%s/%d", srv.ordersPath(), order.ID)

	rec := srv.do(http.MethodGet, path, customerEmail, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodGet, path, ownerEmail, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "MEMBER_ORDER_MISMATCH", problemCode(t, rec))
}

func TestOrderAPI_ListIsOwnerOnly(t *testing.T) {
	srv := newOrderServer(t)
	srv.placeOrder(t)
	srv.placeOrder(t)

	rec := srv.do(http.MethodGet, srv.ordersPath()+"?page=0&size=1", ownerEmail, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page ordermapper.OrderPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)

	rec = srv.do(http.MethodGet, srv.ordersPath(), customerEmail, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ACCESS_DENIED", problemCode(t, rec))

	rec = srv.do(http.MethodGet, srv.ordersPath()+"?size=-1", ownerEmail, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderAPI_ConfirmedCountIsPublic(t *testing.T) {
	srv := newOrderServer(t)
	srv.placeOrder(t)

	rec := srv.do(http.MethodGet, fmt.Sprintf("/api/stores/%d/confirmed-orders/count", srv.storeID), "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var count ordermapper.ConfirmedCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &count))
	assert.Equal(t, "S1", count.StoreName)
	assert.Equal(t, int64(0), count.Count)

	rec = srv.do(http.MethodGet, "/api/stores/404/confirmed-orders/count", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
