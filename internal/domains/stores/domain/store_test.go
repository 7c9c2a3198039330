package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	store, err := NewStore("  S1 ", 3)
	require.NoError(t, err)
	assert.Equal(t, "S1", store.Name)

	_, err = NewStore(" ", 3)
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = NewStore("S1", 0)
	assert.ErrorIs(t, err, ErrInvalidOwnerID)
}

func TestStore_IsOwnedBy(t *testing.T) {
	store := &Store{ID: 1, Name: "S1", OwnerID: 3}

	assert.True(t, store.IsOwnedBy(3))
	assert.False(t, store.IsOwnedBy(4))
	assert.False(t, store.IsOwnedBy(0))

	var missing *Store
	assert.False(t, missing.IsOwnedBy(3))
}
