package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a gateway error for mapping at the HTTP boundary.
type Kind int

// Error kinds.
const (
	KindUnknown    Kind = iota
	KindValidation      // caller input missing or malformed
	KindAuth            // OAuth credential exchange failed
	KindUpstream        // marketplace API returned non-2xx or was unreachable
	KindFetch           // listing page unreachable or removed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindUpstream:
		return "upstream"
	case KindFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// Error is the tagged error type returned by the gateway components.
type Error struct {
	Kind Kind
	// Field names the offending input for validation errors.
	Field string
	// StatusCode is the upstream or fetched page status, when known.
	StatusCode int
	Message    string
	// Details is passed to the caller verbatim (parsed upstream body or text).
	Details any
	Err     error
}

func (e *Error) Error() string {
	var msg string
	switch {
	case e.StatusCode != 0:
		msg = fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	default:
		msg = fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the status code the error maps to at the HTTP boundary.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindFetch:
		return http.StatusBadRequest
	case KindUpstream:
		if e.StatusCode >= 400 && e.StatusCode <= 599 {
			return e.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Validation returns a validation error for field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Auth wraps a failed credential exchange.
func Auth(message string, err error) *Error {
	return &Error{Kind: KindAuth, Message: message, Err: err}
}

// Upstream describes a failed marketplace call. details is returned to the caller.
func Upstream(status int, details any, err error) *Error {
	return &Error{
		Kind:       KindUpstream,
		StatusCode: status,
		Message:    "marketplace request failed",
		Details:    details,
		Err:        err,
	}
}

// Fetch describes a listing page that could not be retrieved.
func Fetch(status int, message string, err error) *Error {
	return &Error{Kind: KindFetch, StatusCode: status, Message: message, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// HTTPStatusOf returns the HTTP status for the first *Error in err's chain,
// or 500 when there is none.
func HTTPStatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
