// Package identity carries the authenticated caller into service operations.
//
// Authentication itself happens upstream; this package only reads the resolved
// identity and hands it to the services as an explicit argument.
package identity

import (
	"errors"
	"strings"
)

// ErrAnonymous is returned when no principal accompanies a request that needs one.
var ErrAnonymous = errors.New("authenticated principal required")

// Principal is the caller resolved by the authentication layer.
type Principal struct {
	Email string
}

// NewPrincipal normalizes the email identity.
func NewPrincipal(email string) (Principal, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Principal{}, ErrAnonymous
	}
	return Principal{Email: email}, nil
}

// IsAnonymous reports whether the principal carries no identity.
func (p Principal) IsAnonymous() bool {
	return strings.TrimSpace(p.Email) == ""
}
