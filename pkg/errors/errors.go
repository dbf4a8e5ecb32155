package errors

import (
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates malformed client input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeUnavailable indicates an external provider could not be reached
	// or refused the request (network failure, timeout, auth, quota)
	ErrorTypeUnavailable ErrorType = "PROVIDER_UNAVAILABLE"

	// ErrorTypeMalformedOutput indicates a provider reply that failed parsing
	// or schema validation and must never be forwarded as a result
	ErrorTypeMalformedOutput ErrorType = "MALFORMED_OUTPUT"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a field-level validation error
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Field:   field,
		Message: message,
	}
}

// NewUnavailableError creates a provider unavailability error
func NewUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewMalformedOutputError creates an error for off-contract provider output
func NewMalformedOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformedOutput,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
