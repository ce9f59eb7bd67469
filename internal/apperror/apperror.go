// Package apperror defines the error type returned across service boundaries
// and its mapping to HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeConflict     Code = "CONFLICT"
	CodeExpired      Code = "EXPIRED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDatabase     Code = "DATABASE_ERROR"
	CodeExternal     Code = "EXTERNAL_SERVICE_ERROR"
)

type AppError struct {
	Code       Code
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

func InvalidInput(reason string) *AppError {
	return New(CodeInvalidInput, reason, http.StatusBadRequest)
}

func Unauthorized(reason string) *AppError {
	return New(CodeUnauthorized, reason, http.StatusUnauthorized)
}

func Forbidden(reason string) *AppError {
	return New(CodeForbidden, reason, http.StatusForbidden)
}

func Conflict(reason string) *AppError {
	return New(CodeConflict, reason, http.StatusConflict)
}

// Expired marks a token-keyed record whose lifetime is over.
func Expired(resource string) *AppError {
	return New(CodeExpired, resource+" expired", http.StatusGone)
}

func Internal(cause error) *AppError {
	return New(CodeInternal, "internal server error", http.StatusInternalServerError).WithCause(cause)
}

func Database(cause error) *AppError {
	return New(CodeDatabase, "database operation failed", http.StatusInternalServerError).WithCause(cause)
}

func External(service string, cause error) *AppError {
	return New(CodeExternal, service+" is unavailable", http.StatusBadGateway).WithCause(cause)
}

// FromDatabase maps a gorm error to an AppError for the named resource.
// A nil err yields a nil error.
func FromDatabase(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(resource).WithCause(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(resource + " already exists").WithCause(err)
	default:
		return Database(err)
	}
}

// From returns err as an AppError, wrapping unknown errors as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
