package ports

import (
	"context"

	types "github.com/Apurer/food-order-api/internal/domains/orders/application/types"
	"github.com/Apurer/food-order-api/internal/shared/identity"
)

// Service exposes order use cases to adapters. The principal is always supplied by the caller.
type Service interface {
	CreateOrder(ctx context.Context, principal identity.Principal, input types.CreateOrderInput) (*types.OrderDetail, error)
	CancelOrder(ctx context.Context, principal identity.Principal, id types.OrderIdentifier) (*types.OrderDetail, error)
	GetOrderDetail(ctx context.Context, principal identity.Principal, id types.OrderIdentifier) (*types.OrderDetail, error)
	GetOrders(ctx context.Context, principal identity.Principal, input types.ListOrdersInput) (*types.OrderPage, error)
	GetCount(ctx context.Context, storeID int64) (*types.ConfirmedCount, error)
}
