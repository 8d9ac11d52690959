package service

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Every failure surfaced to a caller matches exactly
// one of these via errors.Is.
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCategoryNotEmpty   = errors.New("category still has products")
	ErrDuplicateName      = errors.New("product name already exists in category")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUserHasOrders      = errors.New("user still has orders")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrPartialFailure     = errors.New("operation left partial state")
)

// wrapStore classifies an unexpected store failure under ErrStoreUnavailable
// while keeping the cause readable.
func wrapStore(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
