// Package service provides business logic for the application.
package service

import "errors"

// Service errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrJobNotFound        = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotOwner           = errors.New("not the owner of this resource")
	ErrAlreadyApplied     = errors.New("already applied to this job")
)

// ValidationError reports malformed submitted fields.
// Fields maps a field name to its message so handlers can return
// field-level errors.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed"
}

// newValidationError builds a ValidationError from field messages.
func newValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
