package service

import "errors"

var (
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoShippingSelected = errors.New("no shipping option selected")
	ErrUnauthenticated    = errors.New("customer is not authenticated")
	ErrIncompleteProfile  = errors.New("customer profile is incomplete")
	ErrInvalidPostalCode  = errors.New("invalid postal code")
)
