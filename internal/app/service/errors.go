package service

import "fmt"

// ValidationError reports a mutation input rejected before any store call.
// It is an expected, caller-recoverable outcome, distinct from store errors.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
