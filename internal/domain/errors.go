package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidToken covers not-found, expired and revoked uniformly. Public
// callers must never be able to tell which case applied.
var ErrInvalidToken = errors.New("link expired or revoked")

// ErrPermissionDenied is a non-owner attempting a management operation, or a
// non-collaborator attempting export.
var ErrPermissionDenied = errors.New("permission denied")

// ValidationError is a malformed management request, recoverable by
// correcting the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
