/*
errors.go - Centralized error types for the record stores and endpoints

PURPOSE:
  All error types in one place for consistency and discoverability.
  Handlers map these to HTTP status codes; nothing else is surfaced.

ERROR CATEGORIES:
  1. Validation errors - required field absent, enum value not allowed
  2. Not found        - no record matches an identifier
  3. Everything else  - internal, reported generically

USAGE:
    if generic.IsNotFound(err) {
        // 404
    }
    var missing *generic.MissingFieldError
    if errors.As(err, &missing) {
        // 400 naming missing.Field
    }

SEE ALSO:
  - store.go: Stores return ErrNotFound
  - api/handlers.go: Maps errors to responses
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when no record matches an identifier.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is the parent of every client-side validation failure.
	ErrValidation = errors.New("validation failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MissingFieldError reports the first absent required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "Missing required field: " + e.Field
}

func (e *MissingFieldError) Unwrap() error { return ErrValidation }

// InvalidValueError reports a field whose value is not acceptable, e.g. a
// payment method outside the allowed set.
type InvalidValueError struct {
	Field   string
	Value   string
	Message string // full client-facing message; optional
}

func (e *InvalidValueError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Invalid value for field %s: %s", e.Field, e.Value)
}

func (e *InvalidValueError) Unwrap() error { return ErrValidation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
