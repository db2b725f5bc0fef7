package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidProduct is returned when a product is added without an ID.
	ErrInvalidProduct = errors.New("product id required")
	// ErrInvalidQuantity is returned when an add asks for less than one unit.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrEmptyCart is returned when checking out a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
)
