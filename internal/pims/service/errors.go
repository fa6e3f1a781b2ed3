package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// Callers never learn which.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrInvalidResetToken covers unknown, expired and already-consumed reset
	// tokens alike.
	ErrInvalidResetToken = errors.New("service: invalid or expired reset token")

	ErrNotFound = errors.New("service: not found")
)

// ValidationError is a rejected input with a message safe to surface to the
// caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateError reports which unique identity column collided so the client
// can highlight the offending form field.
type DuplicateError struct {
	Field string // "email", "username" or "badgeNumber"
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("service: %s already registered", e.Field)
}

// QuotaExceededError is returned when registration would push a role past its
// configured cap.
type QuotaExceededError struct {
	Role  string
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("service: maximum number of %s accounts (%d) reached", e.Role, e.Limit)
}
