package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID    = errors.New("invalid id")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden access")
	ErrValidation   = errors.New("validation failed")
	ErrUserExists   = errors.New("user already exists")
)

// ValidationError carries the first failed rule of a request body.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PaymentProviderError is returned when the payment provider rejects a
// request or cannot be reached. StatusCode is the provider's, not ours.
type PaymentProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *PaymentProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment provider: %s: %v", e.Message, e.Err)
	}
	return "payment provider: " + e.Message
}

func (e *PaymentProviderError) Unwrap() error { return e.Err }
