package ports

import (
	"context"
	"errors"

	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

var (
	ErrNotFound       = errors.New("menu not found")
	ErrOptionNotFound = errors.New("menu option not found")
)

// Repository persists menus. GetByID returns soft-deleted menus too.
type Repository interface {
	Save(ctx context.Context, menu *domain.Menu) (*domain.Menu, error)
	GetByID(ctx context.Context, id int64) (*domain.Menu, error)
	// ListActiveByStore pages the non-deleted menus of a store ordered by id.
	ListActiveByStore(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[*domain.Menu], error)
	// ImagePaths returns every image path referenced by a menu row, deleted or not.
	ImagePaths(ctx context.Context) ([]string, error)
}

type OptionRepository interface {
	Save(ctx context.Context, option *domain.Option) (*domain.Option, error)
	GetByID(ctx context.Context, id int64) (*domain.Option, error)
	ListByMenu(ctx context.Context, menuID int64) ([]*domain.Option, error)
}
