package domain

import (
	"errors"
	"strings"
)

// Role separates store owners from ordering customers.
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleCustomer Role = "CUSTOMER"
)

var (
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrInvalidRole  = errors.New("member role is invalid")
)

// Member is an account identified by its email.
type Member struct {
	ID    int64
	Email string
	Name  string
	Role  Role
}

// NewMember builds a member ensuring required invariants.
func NewMember(email, name string, role Role) (*Member, error) {
	m := &Member{Email: strings.TrimSpace(email), Name: strings.TrimSpace(name), Role: role}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Member) Validate() error {
	if !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	switch m.Role {
	case RoleOwner, RoleCustomer:
		return nil
	default:
		return ErrInvalidRole
	}
}

// HasEmail compares identities case-insensitively.
func (m *Member) HasEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), m.Email)
}
