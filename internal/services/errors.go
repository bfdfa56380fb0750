package services

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("name, email, and password are required")
	ErrEmailInUse         = errors.New("email is already in use")
	ErrNotLoggedIn        = errors.New("please log in to continue")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrNotInCart          = errors.New("item is not in the cart")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrDesignNotFound     = errors.New("design not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidFilter      = errors.New("invalid filter")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidStep        = errors.New("action not allowed at this checkout step")
	ErrIncompleteForm     = errors.New("required fields are missing")
	ErrInvalidToken       = errors.New("invalid client token")
)

// FieldError lists the blank required fields of a submitted form.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return ErrIncompleteForm.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *FieldError) Unwrap() error {
	return ErrIncompleteForm
}
