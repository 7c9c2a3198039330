package ports

import (
	"context"
	"errors"

	"github.com/Apurer/food-order-api/internal/domains/stores/domain"
)

var ErrNotFound = errors.New("store not found")

type Repository interface {
	Save(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
}
