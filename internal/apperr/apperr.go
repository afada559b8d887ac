// Package apperr defines the error kinds shared by every feature and maps
// them onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrStore         = errors.New("store error")
)

// Error carries a client-facing message together with its kind.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == ErrStore {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a validation error with the given message.
func Validation(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

// InvalidStatus returns an invalid status error with the given message.
func InvalidStatus(message string) *Error {
	return &Error{Kind: ErrInvalidStatus, Message: message}
}

// NotFound returns a not found error with the given message.
func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Conflict returns a conflict error with the given message.
func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Store wraps a persistence failure. op names the failed operation.
func Store(op string, err error) *Error {
	return &Error{Kind: ErrStore, Message: op, Err: err}
}

// HTTPStatus maps err to the response status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show to clients.
// Store and unexpected errors never leak their cause.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != ErrStore {
		return appErr.Message
	}
	return "Internal server error"
}
