package service

import "errors"

// Sentinel errors surfaced to handlers. Anything not listed here is a
// gateway (database/cache) failure and propagates as-is on write paths.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidRating    = errors.New("invalid rating")
	ErrNotOwner         = errors.New("resource owned by another user")
)
