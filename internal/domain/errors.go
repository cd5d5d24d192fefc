package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken: the email uniqueness check is exact and case-sensitive.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAccountDisabled = errors.New("account is disabled")
	ErrForbidden       = errors.New("insufficient permissions")
	ErrOutOfStock      = errors.New("out of stock")
)

// ValidationError marks input rejected before any store access.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func Invalidf(format string, args ...any) ValidationError {
	return ValidationError(fmt.Sprintf(format, args...))
}

// InsufficientStockError: the shelf holds some stock, just not enough.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}
