// Package apperr defines the error kinds that cross package boundaries and
// decide the HTTP status a request ends with.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a missing or malformed request field. It is always
// detected before any side effect runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Missing builds a ValidationError for a required field that was absent or empty.
func Missing(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "Missing required field: " + field}
}

// Invalid builds a ValidationError for a field with an unacceptable value.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UpstreamError wraps a failure of an external gateway (database, mail, AI,
// rate source). Its message is logged but never shown to callers outside
// development mode.
type UpstreamError struct {
	Gateway string
	Op      string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Gateway, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream wraps err as an UpstreamError. A nil err stays nil.
func Upstream(gateway, op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Gateway: gateway, Op: op, Err: err}
}

// ConfigurationError lists the required settings that were not provided.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Missing, ", ")
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
