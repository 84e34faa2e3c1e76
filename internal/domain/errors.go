package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrPersistence = errors.New("persistence error")
)

// Reason strings shared by entity validation and request validation.
const (
	MsgRequired     = "is required"
	MsgMustNotBlank = "must not be blank"
)

// ValidationError reports the first rule a value broke. Field is the JSON
// name of the offending field and is empty for whole-body problems (malformed
// JSON, missing properties).
//
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr)
// to read Field and Reason.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError returns a *ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
