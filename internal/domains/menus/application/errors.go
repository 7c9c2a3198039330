package application

import (
	"errors"

	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
	storeports "github.com/Apurer/food-order-api/internal/domains/stores/ports"
	"github.com/Apurer/food-order-api/internal/shared/failure"
)

// mapError classifies repository and domain errors; anything else passes through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var classified *failure.Error
	if errors.As(err, &classified) {
		return err
	}
	switch {
	case errors.Is(err, storeports.ErrNotFound):
		return failure.StoreNotFound.Wrap(err)
	case errors.Is(err, ports.ErrNotFound):
		return failure.MenuNotFound.Wrap(err)
	case errors.Is(err, ports.ErrOptionNotFound):
		return failure.MenuOptionNotFound.Wrap(err)
	case errors.Is(err, ports.ErrInvalidImagePath):
		return failure.InvalidImageInput.Wrap(err)
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidStoreID),
		errors.Is(err, domain.ErrEmptyImagePath),
		errors.Is(err, domain.ErrEmptyOptionName),
		errors.Is(err, domain.ErrNegativeOptionPrice),
		errors.Is(err, domain.ErrInvalidMenuID):
		return failure.InvalidInput.Wrap(err)
	}
	return err
}
