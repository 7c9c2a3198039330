package ports

import (
	"context"
	"errors"

	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Save inserts a new order with its lines when ID is zero;
// for an existing order only the status is written, lines are immutable.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetByIDForUpdate loads the order and locks its row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	// ListByStore pages the orders of a store, newest first.
	ListByStore(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[*domain.Order], error)
	CountByStoreAndStatus(ctx context.Context, storeID int64, status domain.Status) (int64, error)
}
