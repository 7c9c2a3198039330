package types

import (
	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

type ListOrdersInput struct {
	StoreID int64
	Page    pagination.Request
}

// OrderDetail is the order projection returned to callers.
type OrderDetail struct {
	Order     *domain.Order
	StoreName string
}

type OrderPage = pagination.Page[*domain.Order]

// ConfirmedCount reports how many orders of a store are in CONFIRM.
type ConfirmedCount struct {
	StoreID   int64
	StoreName string
	Count     int64
}
