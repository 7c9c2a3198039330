package application

import (
	"errors"

	menuports "github.com/Apurer/food-order-api/internal/domains/menus/ports"
	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/domains/orders/ports"
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
	case errors.Is(err, ports.ErrNotFound):
		return failure.OrderNotFound.Wrap(err)
	case errors.Is(err, menuports.ErrOptionNotFound):
		return failure.MenuOptionNotFound.Wrap(err)
	case errors.Is(err, domain.ErrAlreadyCanceled):
		return failure.OrderAlreadyCanceled.Wrap(err)
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrQuantityTooLarge),
		errors.Is(err, domain.ErrAmountOverflow),
		errors.Is(err, domain.ErrInvalidMenuID),
		errors.Is(err, domain.ErrInvalidMemberID),
		errors.Is(err, domain.ErrInvalidStoreID),
		errors.Is(err, domain.ErrInvalidTransition):
		return failure.InvalidInput.Wrap(err)
	}
	return err
}
