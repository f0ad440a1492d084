package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response
var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError is an error with an HTTP status and a client-facing message.
// Cause, when set, is the underlying failure; for 5xx errors its text is
// rendered in the "error" field of the envelope.
type HTTPError struct {
	Code    int
	Message string
	Cause   error
}

// NewHTTPError creates an HTTPError without a cause.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e HTTPError) Unwrap() error {
	return e.Cause
}

// Wrap returns a copy of e with cause attached.
func (e HTTPError) Wrap(cause error) HTTPError {
	e.Cause = cause
	return e
}

// Generic errors used by the router and the default error path.
var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "Bad request")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "Not found")
	ErrMethodNotAllowed    = NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "Internal server error")
)
