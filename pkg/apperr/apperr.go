package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation      = errors.New("validation")      // 422
	ErrUnauthenticated = errors.New("unauthenticated") // 401
	ErrForbidden       = errors.New("forbidden")       // 403
	ErrNotFound        = errors.New("not found")       // 404
	ErrConflict        = errors.New("conflict")        // 409
	ErrInternal        = errors.New("internal")        // 500
)

// Error carries a kind from the taxonomy above and the message shown to the caller.
type Error struct {
	Kind    error
	Message string
	Details map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) *Error      { return New(ErrValidation, msg) }
func Unauthenticated(msg string) *Error { return New(ErrUnauthenticated, msg) }
func Forbidden(msg string) *Error       { return New(ErrForbidden, msg) }
func NotFound(msg string) *Error        { return New(ErrNotFound, msg) }
func Conflict(msg string) *Error        { return New(ErrConflict, msg) }

func ValidationWithDetails(msg string, details map[string][]string) *Error {
	return &Error{Kind: ErrValidation, Message: msg, Details: details}
}

// StatusCode maps err onto an HTTP status. Anything outside the taxonomy is a 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
