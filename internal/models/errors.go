package models

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the workflows. Use errors.Is to classify.
var (
	ErrValidation = errors.New("validation failed")
	ErrAuth       = errors.New("authentication failed")
	ErrRetrieval  = errors.New("failed to retrieve materials")
	ErrUpload     = errors.New("failed to upload material")
	ErrDelete     = errors.New("failed to delete material")
	ErrNotFound   = errors.New("material not found")
	ErrForbidden  = errors.New("material belongs to another user")
)

// ValidationError reports a client-side precondition failure for a single field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
