package model

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeValidation indicates a value that failed validation (bad time, unknown recurrence)
	ErrTypeValidation ErrorType = iota
	// ErrTypeNotFound indicates a lookup by (day, index) that matched nothing
	ErrTypeNotFound
)

// Sentinel errors for errors.Is checks
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("conference not found")
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeNotFound:
		return "Not Found"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned by model operations that can fail recoverably.
type Error struct {
	Type    ErrorType // Category of error
	Field   string    // Field or operation the error relates to
	Value   string    // Offending input, if any
	Message string    // Human-readable reason
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel belonging to the error's type.
func (e *Error) Is(target error) bool {
	switch e.Type {
	case ErrTypeValidation:
		return target == ErrValidation
	case ErrTypeNotFound:
		return target == ErrNotFound
	}
	return false
}

// NewValidationError creates a validation error for the named field.
func NewValidationError(field, value, message string) *Error {
	return &Error{
		Type:    ErrTypeValidation,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewNotFoundError creates a lookup error for a conference position.
func NewNotFoundError(day, index, count int) *Error {
	return &Error{
		Type:    ErrTypeNotFound,
		Field:   fmt.Sprintf("%s[%d]", DayName(day), index),
		Message: fmt.Sprintf("index %d out of range (day has %d conferences)", index, count),
	}
}

// IsValidationError reports whether err is a validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a lookup failure
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
