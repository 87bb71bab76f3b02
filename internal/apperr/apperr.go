// Package apperr defines the error taxonomy surfaced by the HTTP layer.
// Every handler failure is classified into one of the kinds below; the
// respond package maps kinds to status codes.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	Validation Kind = iota
	Auth
	NotFound
	Conflict
	Internal
)

// Status returns the HTTP status for a kind. Conflict maps to 400 rather
// than 409: duplicate-email is reported as a bad request with a distinct
// message, matching the rest of the API's validation surface.
func (k Kind) Status() int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified, terminal per-request error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a caller-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error, keeping it available for errors.Is.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the caller-facing message for an error chain. Unclassified
// errors surface their own text; this is an internal tool, not a hardened
// public API.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
