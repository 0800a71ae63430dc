// Package apperr defines the error taxonomy shared by all services.
// Handlers map each kind to an HTTP status without knowing where the
// error came from; services wrap the kind sentinels so callers can use
// errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a business-rule violation relative to existing
	// state (capacity exceeded, duplicate active session, duplicate slot).
	ErrConflict = errors.New("conflict")
	// ErrValidation marks malformed or semantically invalid input.
	ErrValidation = errors.New("invalid input")
	// ErrDataIntegrity marks a storage constraint violation that slipped
	// past the pre-checks. Treated as a conflict at the boundary.
	ErrDataIntegrity = errors.New("data integrity violation")
)

func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

func Validation(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

func DataIntegrity(format string, args ...any) error {
	return wrap(ErrDataIntegrity, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
