package domain

import (
	"errors"
	"strings"
)

// DefaultImageName is stored for menus created without an uploaded image.
const DefaultImageName = "no_image.jpg"

var (
	ErrEmptyName      = errors.New("menu name is required")
	ErrNegativePrice  = errors.New("menu price must not be negative")
	ErrInvalidStoreID = errors.New("menu store id must be greater than zero")
	ErrEmptyImagePath = errors.New("menu image path is required")
)

// Menu is an item a store sells. Menus are soft-deleted so past orders keep resolving.
type Menu struct {
	ID          int64
	StoreID     int64
	Name        string
	Description string
	// Price is expressed in minor currency units.
	Price     int64
	ImagePath string
	Deleted   bool
}

// NewMenu validates and constructs a menu for storeID.
func NewMenu(storeID int64, name, description string, price int64, imagePath string) (*Menu, error) {
	if storeID <= 0 {
		return nil, ErrInvalidStoreID
	}
	m := &Menu{StoreID: storeID}
	if err := m.Update(name, description, price); err != nil {
		return nil, err
	}
	if err := m.AttachImage(imagePath); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the descriptive fields in place.
func (m *Menu) Update(name, description string, price int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if price < 0 {
		return ErrNegativePrice
	}
	m.Name = name
	m.Description = strings.TrimSpace(description)
	m.Price = price
	return nil
}

func (m *Menu) AttachImage(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyImagePath
	}
	m.ImagePath = path
	return nil
}

func (m *Menu) MarkDeleted() {
	m.Deleted = true
}

// BelongsTo reports whether the menu is sold by storeID.
func (m *Menu) BelongsTo(storeID int64) bool {
	return m != nil && m.StoreID == storeID
}

// IsAvailable reports whether the menu can be listed or ordered.
func (m *Menu) IsAvailable() bool {
	return m != nil && !m.Deleted
}
