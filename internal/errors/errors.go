// Package apperrors defines the structured error types of bigcalc and the exit
// codes they map to. Each type carries its underlying cause so that callers
// can inspect it with errors.Is and errors.As.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Unclassified failure.
	ExitErrorTimeout  = 2   // The execution limit was reached.
	ExitErrorMismatch = 3   // Engines disagreed on a result.
	ExitErrorConfig   = 4   // Invalid flags or environment.
	ExitErrorInput    = 5   // Invalid operand, operator or divisor.
	ExitErrorCanceled = 130 // Interrupted by the user (SIGINT).
)

// ConfigError reports an invalid flag or environment value.
type ConfigError struct {
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InputError reports an operand, operator or batch job that cannot be
// evaluated. Field names the offending input ("a", "op", "b", "job").
type InputError struct {
	Field string
	Cause error
}

// Error returns the field and the cause.
func (e InputError) Error() string {
	if e.Field == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Cause)
}

// Unwrap returns the underlying cause.
func (e InputError) Unwrap() error { return e.Cause }

// NewInputError wraps cause as an InputError for field. It returns nil when
// cause is nil.
//
// Parameters:
//   - field: The name of the offending input.
//   - cause: The parse or validation error.
//
// Returns:
//   - error: A new InputError, or nil.
func NewInputError(field string, cause error) error {
	if cause == nil {
		return nil
	}
	return InputError{Field: field, Cause: cause}
}

// ServerError represents errors that occur in the HTTP server component.
type ServerError struct {
	Message string
	Cause   error
}

// Error combines the message and the underlying cause if present.
//
// Returns:
//   - string: The complete error message.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
//
// Parameters:
//   - message: A description of the error context.
//   - cause: The underlying error that occurred (can be nil).
//
// Returns:
//   - error: A new ServerError instance.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// ValidationError reports a request or configuration field that failed
// validation.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// WrapError wraps err with a formatted context message using %w. It returns
// nil when err is nil.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a context cancellation or deadline
// error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsInputError reports whether err is caused by user input.
func IsInputError(err error) bool {
	var ie InputError
	return errors.As(err, &ie)
}
