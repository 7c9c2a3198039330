package ports

import (
	"context"

	types "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
)

// Service exposes menu use cases to adapters.
type Service interface {
	CreateMenu(ctx context.Context, input types.CreateMenuInput) (*domain.Menu, error)
	UpdateMenu(ctx context.Context, input types.UpdateMenuInput) (*domain.Menu, error)
	DeleteMenu(ctx context.Context, id types.MenuIdentifier) error
	FindImage(ctx context.Context, id types.MenuIdentifier) (*types.MenuImage, error)
	FindMenus(ctx context.Context, input types.FindMenusInput) (*types.MenuPage, error)
	AddOption(ctx context.Context, input types.AddOptionInput) (*domain.Option, error)
	PurgeOrphanImages(ctx context.Context, input types.PurgeOrphanImagesInput) (*types.PurgeOrphanImagesResult, error)
}
