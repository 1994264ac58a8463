package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies application errors for transport-layer mapping.
type ErrorCode string

const (
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// AppError is the application-level error type carried across layer
// boundaries. Handlers map its code onto an HTTP status.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates an error for invalid client input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, identifier string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", entity, identifier),
	}
}

// NewConflictError creates an error for a store-level uniqueness conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: err}
}

// CodeOf extracts the ErrorCode from err, or CodeInternal if err is not an
// AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsNotFound reports whether err is a not-found application error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}
