package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenu(t *testing.T) {
	menu, err := NewMenu(1, "  Tteokbokki ", " spicy ", 10000, DefaultImageName)
	require.NoError(t, err)
	assert.Equal(t, "Tteokbokki", menu.Name)
	assert.Equal(t, "spicy", menu.Description)
	assert.True(t, menu.BelongsTo(1))
	assert.False(t, menu.BelongsTo(2))
	assert.True(t, menu.IsAvailable())
}

func TestNewMenu_Invalid(t *testing.T) {
	_, err := NewMenu(0, "x", "", 1, DefaultImageName)
	require.ErrorIs(t, err, ErrInvalidStoreID)
	_, err = NewMenu(1, " ", "", 1, DefaultImageName)
	require.ErrorIs(t, err, ErrEmptyName)
	_, err = NewMenu(1, "x", "", -1, DefaultImageName)
	require.ErrorIs(t, err, ErrNegativePrice)
	_, err = NewMenu(1, "x", "", 1, "")
	require.ErrorIs(t, err, ErrEmptyImagePath)
}

func TestMenu_UpdateKeepsStateOnError(t *testing.T) {
	menu, err := NewMenu(1, "Ramen", "", 5000, DefaultImageName)
	require.NoError(t, err)

	require.ErrorIs(t, menu.Update("Ramen", "", -10), ErrNegativePrice)
	assert.Equal(t, int64(5000), menu.Price)

	require.NoError(t, menu.Update("Cheese Ramen", "with cheese", 5500))
	assert.Equal(t, "Cheese Ramen", menu.Name)
	assert.Equal(t, int64(5500), menu.Price)
}

func TestMenu_MarkDeleted(t *testing.T) {
	menu := &Menu{ID: 3, StoreID: 1}
	menu.MarkDeleted()
	assert.True(t, menu.Deleted)
	assert.False(t, menu.IsAvailable())
}

func TestNewOption(t *testing.T) {
	opt, err := NewOption(3, " Extra cheese ", 1000)
	require.NoError(t, err)
	assert.Equal(t, "Extra cheese", opt.Name)
	assert.True(t, opt.BelongsTo(3))

	_, err = NewOption(3, "x", -1)
	require.ErrorIs(t, err, ErrNegativeOptionPrice)
	_, err = NewOption(0, "x", 1)
	require.ErrorIs(t, err, ErrInvalidMenuID)
}
