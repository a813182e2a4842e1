package services

import (
	"errors"
	"fmt"
)

// ErrValidation marks user input rejected before any store call.
var ErrValidation = errors.New("validation failed")

// ValidationError describes a rejected input field. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, value, format string, args ...any) error {
	return &ValidationError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
