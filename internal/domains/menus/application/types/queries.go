package types

import (
	"io"

	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

type FindMenusInput struct {
	StoreID int64
	Page    pagination.Request
}

// MenuPage is one page of a store's active menus.
type MenuPage = pagination.Page[*domain.Menu]

// MenuImage streams a stored menu image. Callers must close Content.
type MenuImage struct {
	Path    string
	Content io.ReadCloser
}
