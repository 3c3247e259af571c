package errors

import "fmt"

// ValidationError reports a malformed input field. It is always surfaced to
// the caller and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConfigError reports unusable open-hours configuration. Zero slots must come
// out as this error, never as an empty success.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid day configuration: %s", e.Reason)
}

func NewConfigError(reason string) *ConfigError {
	return &ConfigError{Reason: reason}
}

type sentinel string

func (s sentinel) Error() string { return string(s) }

const (
	// ErrConflict means the requested interval overlaps an active reservation.
	ErrConflict = sentinel("reservation conflict: interval overlaps an active reservation")
	// ErrNotFound means no reservation exists for the given identity.
	ErrNotFound = sentinel("reservation not found")
	// ErrInvalidTransition means the requested status change is not allowed
	// from the reservation's current status.
	ErrInvalidTransition = sentinel("invalid status transition")
)
