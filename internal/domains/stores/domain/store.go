package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName      = errors.New("store name is required")
	ErrInvalidOwnerID = errors.New("store owner id must be greater than zero")
)

// Store is a shop run by a single owning member.
type Store struct {
	ID      int64
	Name    string
	OwnerID int64
}

func NewStore(name string, ownerID int64) (*Store, error) {
	s := &Store{Name: strings.TrimSpace(name), OwnerID: ownerID}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.OwnerID <= 0 {
		return ErrInvalidOwnerID
	}
	return nil
}

// IsOwnedBy reports whether memberID owns the store.
func (s *Store) IsOwnedBy(memberID int64) bool {
	return s != nil && memberID > 0 && s.OwnerID == memberID
}
