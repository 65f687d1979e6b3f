// Package apperr defines the closed set of failure kinds the service
// reports to clients. Handlers and services return *Error values; the
// central HTTP error handler maps them onto the response envelope.
// Infrastructure errors must never reach this package unwrapped — the
// service boundary converts them into Server errors with a fixed
// message so storage internals stay out of responses.
package apperr

import "net/http"

// Error is a client-visible failure with a fixed HTTP status and an
// optional structured payload.
type Error struct {
	Status  int
	Message string
	Data    any
}

func (e *Error) Error() string { return e.Message }

// Validation reports a malformed or conflicting request (422).
func Validation(message string, data any) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message, Data: data}
}

// Authentication reports missing or bad credentials (401).
func Authentication(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden reports a caller acting on a resource they do not own (403).
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NotFound reports a missing resource (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Server reports an internal failure with a generic message (500). The
// underlying cause is expected to be logged by the caller before
// wrapping; it is never carried to the client.
func Server(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}
