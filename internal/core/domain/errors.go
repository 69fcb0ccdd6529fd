package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("invalid request")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUpstreamUnavailable = errors.New("auth provider unavailable")

	// Normalization failures. They mean the provider's response shape no
	// longer matches what the bridge understands.
	ErrMissingField = errors.New("missing field")
	ErrInvalidDate  = errors.New("invalid date")
	ErrMissingToken = errors.New("missing session token")
)

// AuthError is the uniform failure body of every bridge operation.
type AuthError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ProviderError is returned when the identity provider rejected an operation.
type ProviderError struct {
	Status int
	Body   AuthError
}

func (e *ProviderError) Error() string {
	if e.Body.Details != "" {
		return fmt.Sprintf("auth provider rejected request (%d): %s: %s", e.Status, e.Body.Error, e.Body.Details)
	}
	return fmt.Sprintf("auth provider rejected request (%d): %s", e.Status, e.Body.Error)
}

// ValidationError carries the human-readable reasons a request body was rejected.
type ValidationError struct {
	Details string
}

func (e *ValidationError) Error() string { return "invalid request: " + e.Details }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NormalizeError names the field whose value could not be normalized.
type NormalizeError struct {
	Kind  error
	Field string
	Value any
}

func (e *NormalizeError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("normalize %s: %v (%v)", e.Field, e.Kind, e.Value)
	}
	return fmt.Sprintf("normalize %s: %v", e.Field, e.Kind)
}

func (e *NormalizeError) Unwrap() error { return e.Kind }

// IsNormalization reports whether err is any of the normalization failures.
func IsNormalization(err error) bool {
	return errors.Is(err, ErrMissingField) || errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrMissingToken)
}
