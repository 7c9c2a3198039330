package mapper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	types "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

// Menu is the HTTP representation of an active menu.
type Menu struct {
	ID          int64  `json:"id"`
	StoreID     int64  `json:"storeId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

// MenuPage wraps a page of menus with its position in the listing.
type MenuPage struct {
	Items      []Menu `json:"items"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	TotalItems int64  `json:"totalItems"`
	TotalPages int    `json:"totalPages"`
}

// MenuOption is the payload for adding an option and its response body.
type MenuOption struct {
	ID     int64  `json:"id,omitempty"`
	MenuID int64  `json:"menuId,omitempty"`
	Name   string `json:"name" binding:"required"`
	Price  *int64 `json:"price" binding:"required"`
}

// MenuForm holds the text fields of a multipart menu form before parsing.
type MenuForm struct {
	Name        string
	Description string
	Price       string
}

var errMissingPrice = errors.New("price is required")

// ImageURL is the public path serving the image of a menu.
func ImageURL(storeID, menuID int64) string {
	return fmt.Sprintf("/api/stores/%d/menus/%d/image", storeID, menuID)
}

// ToMutationInput parses the form fields. The image is attached by the caller.
func ToMutationInput(form MenuForm, image *types.ImageUpload) (types.MenuMutationInput, error) {
	raw := strings.TrimSpace(form.Price)
	if raw == "" {
		return types.MenuMutationInput{}, errMissingPrice
	}
	price, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return types.MenuMutationInput{}, fmt.Errorf("price must be an integer amount: %w", err)
	}
	return types.MenuMutationInput{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		Price:       price,
		Image:       image,
	}, nil
}

func FromDomain(menu *domain.Menu) Menu {
	if menu == nil {
		return Menu{}
	}
	return Menu{
		ID:          menu.ID,
		StoreID:     menu.StoreID,
		Name:        menu.Name,
		Description: menu.Description,
		Price:       menu.Price,
		ImageURL:    ImageURL(menu.StoreID, menu.ID),
	}
}

func FromPage(page *types.MenuPage) MenuPage {
	if page == nil {
		return MenuPage{Items: []Menu{}}
	}
	mapped := pagination.Map(*page, FromDomain)
	return MenuPage{
		Items:      mapped.Items,
		Page:       mapped.Page,
		Size:       mapped.Size,
		TotalItems: mapped.TotalItems,
		TotalPages: mapped.TotalPages(),
	}
}

func ToAddOptionInput(storeID, menuID int64, payload MenuOption) types.AddOptionInput {
	input := types.AddOptionInput{StoreID: storeID, MenuID: menuID, Name: strings.TrimSpace(payload.Name)}
	if payload.Price != nil {
		input.Price = *payload.Price
	}
	return input
}

func FromOption(option *domain.Option) MenuOption {
	if option == nil {
		return MenuOption{}
	}
	price := option.Price
	return MenuOption{ID: option.ID, MenuID: option.MenuID, Name: option.Name, Price: &price}
}
