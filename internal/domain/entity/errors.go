package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying check failures. Platform adapters wrap every
// failure with exactly one of these kinds so callers can match with
// errors.Is while the message keeps the underlying cause.
var (
	// ErrNetworkUnavailable indicates that the platform endpoint could not be reached
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrMalformedResponse indicates that the endpoint answered with data that
	// could not be parsed in the expected format
	ErrMalformedResponse = errors.New("malformed response")

	// ErrMissingField indicates that an otherwise parseable response was missing
	// a required field
	ErrMissingField = errors.New("missing field")
)

// kindError carries one of the sentinel kinds behind a human-readable
// message, so reports show only the message while errors.Is still matches
// the kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// NetworkUnavailable builds an ErrNetworkUnavailable error with a
// printf-style message.
func NetworkUnavailable(format string, args ...any) error {
	return &kindError{kind: ErrNetworkUnavailable, msg: fmt.Sprintf(format, args...)}
}

// MalformedResponse builds an ErrMalformedResponse error with a
// printf-style message.
func MalformedResponse(format string, args ...any) error {
	return &kindError{kind: ErrMalformedResponse, msg: fmt.Sprintf(format, args...)}
}

// MissingField builds an ErrMissingField error with a printf-style message.
func MissingField(format string, args ...any) error {
	return &kindError{kind: ErrMissingField, msg: fmt.Sprintf(format, args...)}
}

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
