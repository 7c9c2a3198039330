// Package failure defines the error taxonomy shared by the menu and order contexts.
//
// Every concrete failure carries a kind sentinel and a stable code. Callers match
// on the kind for coarse handling (errors.Is(err, failure.ErrNotFound)) and on a
// template for the exact case (errors.Is(err, failure.StoreMenuMismatch)).
package failure

import (
	"errors"
	"fmt"
)

// Kinds.
var (
	ErrNotFound          = errors.New("not found")
	ErrOwnershipMismatch = errors.New("ownership mismatch")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidTotalPrice = errors.New("invalid total price")
	ErrAlreadyCanceled   = errors.New("already canceled")
	ErrInvalidInput      = errors.New("invalid input")
)

// Code identifies a concrete failure independently of its message.
type Code string

const (
	CodeStoreNotFound        Code = "STORE_NOT_FOUND"
	CodeMemberNotFound       Code = "MEMBER_NOT_FOUND"
	CodeMenuNotFound         Code = "MENU_NOT_FOUND"
	CodeMenuOptionNotFound   Code = "MENU_OPTION_NOT_FOUND"
	CodeOrderNotFound        Code = "ORDER_NOT_FOUND"
	CodeStoreIDMismatch      Code = "STORE_ID_MISMATCH"
	CodeStoreMenuMismatch    Code = "STORE_MENU_MISMATCH"
	CodeMemberOrderMismatch  Code = "MEMBER_ORDER_MISMATCH"
	CodeStoreOrderMismatch   Code = "STORE_ORDER_MISMATCH"
	CodeAccessDenied         Code = "ACCESS_DENIED"
	CodeInvalidTotalPrice    Code = "INVALID_TOTAL_PRICE"
	CodeOrderAlreadyCanceled Code = "ORDER_ALREADY_CANCELED"
	CodeInvalidImageInput    Code = "INVALID_IMAGE_INPUT"
	CodeInvalidInput         Code = "INVALID_INPUT"
)

// Error is a classified failure.
type Error struct {
	Kind    error
	Code    Code
	Message string
	Cause   error
}

// Templates usable as errors.Is targets.
var (
	StoreNotFound        = &Error{Kind: ErrNotFound, Code: CodeStoreNotFound, Message: "store not found"}
	MemberNotFound       = &Error{Kind: ErrNotFound, Code: CodeMemberNotFound, Message: "member not found"}
	MenuNotFound         = &Error{Kind: ErrNotFound, Code: CodeMenuNotFound, Message: "menu not found"}
	MenuOptionNotFound   = &Error{Kind: ErrNotFound, Code: CodeMenuOptionNotFound, Message: "menu option not found"}
	OrderNotFound        = &Error{Kind: ErrNotFound, Code: CodeOrderNotFound, Message: "order not found"}
	StoreIDMismatch      = &Error{Kind: ErrOwnershipMismatch, Code: CodeStoreIDMismatch, Message: "menu does not belong to store"}
	StoreMenuMismatch    = &Error{Kind: ErrOwnershipMismatch, Code: CodeStoreMenuMismatch, Message: "menu is not sold by store"}
	MemberOrderMismatch  = &Error{Kind: ErrOwnershipMismatch, Code: CodeMemberOrderMismatch, Message: "order was not placed by member"}
	StoreOrderMismatch   = &Error{Kind: ErrOwnershipMismatch, Code: CodeStoreOrderMismatch, Message: "order was not placed at store"}
	AccessDenied         = &Error{Kind: ErrAccessDenied, Code: CodeAccessDenied, Message: "access denied"}
	InvalidTotalPrice    = &Error{Kind: ErrInvalidTotalPrice, Code: CodeInvalidTotalPrice, Message: "total price does not match"}
	OrderAlreadyCanceled = &Error{Kind: ErrAlreadyCanceled, Code: CodeOrderAlreadyCanceled, Message: "order already canceled"}
	InvalidImageInput    = &Error{Kind: ErrInvalidInput, Code: CodeInvalidImageInput, Message: "invalid image input"}
	InvalidInput         = &Error{Kind: ErrInvalidInput, Code: CodeInvalidInput, Message: "invalid input"}
)

// With returns a copy of the template carrying a specific message.
func (e *Error) With(format string, args ...any) *Error {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

// Wrap returns a copy of the template recording the underlying cause.
func (e *Error) Wrap(cause error) *Error {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Cause != nil && e.Cause.Error() != msg {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Is matches another *Error by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the failure code, or "" when err is not classified.
func CodeOf(err error) Code {
	var f *Error
	if errors.As(err, &f) {
		return f.Code
	}
	return ""
}
