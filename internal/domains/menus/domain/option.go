package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyOptionName     = errors.New("option name is required")
	ErrNegativeOptionPrice = errors.New("option price must not be negative")
	ErrInvalidMenuID       = errors.New("option menu id must be greater than zero")
)

// Option is an add-on selectable for one menu. Its price is charged once per order line.
type Option struct {
	ID     int64
	MenuID int64
	Name   string
	Price  int64
}

func NewOption(menuID int64, name string, price int64) (*Option, error) {
	o := &Option{MenuID: menuID, Name: strings.TrimSpace(name), Price: price}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Option) Validate() error {
	if o.MenuID <= 0 {
		return ErrInvalidMenuID
	}
	if strings.TrimSpace(o.Name) == "" {
		return ErrEmptyOptionName
	}
	if o.Price < 0 {
		return ErrNegativeOptionPrice
	}
	return nil
}

// BelongsTo reports whether the option is offered on menuID.
func (o *Option) BelongsTo(menuID int64) bool {
	return o != nil && o.MenuID == menuID
}
