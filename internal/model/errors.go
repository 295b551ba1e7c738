package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced account or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOrExpired means a one-time code does not match or has expired.
	ErrInvalidOrExpired = errors.New("invalid or expired code")
	// ErrForbidden means the caller does not own the targeted resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidToken means a session token failed validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthenticated means no session token was presented.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUpstream means the scorer was unreachable or returned an error.
	ErrUpstream = errors.New("scorer unavailable")
	// ErrDelivery means a one-time code could not be dispatched.
	ErrDelivery = errors.New("code delivery failed")
	// ErrInvalidAssertion means a Google identity assertion was rejected.
	ErrInvalidAssertion = errors.New("invalid identity assertion")
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%q %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
