package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrReferenced    = errors.New("referenced by another record")
	ErrLocked        = errors.New("too many attempts")
	ErrUnavailable   = errors.New("dependency unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Message returns the first user-facing message, suitable for a flash banner.
func (e *ValidationError) Message() string {
	if len(e.Errors) == 0 {
		return "invalid input"
	}
	return e.Errors[0].Message
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// UniqueError is a unique constraint violation. Constraint is empty when
// the store did not name one.
type UniqueError struct {
	Constraint string
}

func (e *UniqueError) Error() string {
	if e.Constraint == "" {
		return ErrAlreadyExists.Error()
	}
	return fmt.Sprintf("%s (%s)", ErrAlreadyExists, e.Constraint)
}

func (e *UniqueError) Unwrap() error { return ErrAlreadyExists }

// ViolatedConstraint returns the constraint named by a UniqueError in err's
// chain, or "".
func ViolatedConstraint(err error) string {
	var ue *UniqueError
	if errors.As(err, &ue) {
		return ue.Constraint
	}
	return ""
}

// LockedError is returned while a username is inside its lockout window.
type LockedError struct {
	Wait time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("too many attempts, retry in %ds", WaitSeconds(e.Wait))
}

func (e *LockedError) Unwrap() error { return ErrLocked }

// WaitSeconds rounds a remaining wait up to whole seconds, never below 1.
func WaitSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
