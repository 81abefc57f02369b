package services

import (
	"errors"

	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP status codes; everything else is treated as an internal failure.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrEmptyFile          = errors.New("file contains no data rows")
)

// ValidationFailedError carries field-level details alongside the
// ErrValidationFailed sentinel so handlers can render both.
type ValidationFailedError struct {
	Details validator.ValidationErrors
}

func (e *ValidationFailedError) Error() string {
	return e.Details.Error()
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

func newValidationError(details validator.ValidationErrors) error {
	return &ValidationFailedError{Details: details}
}
