// Package apperror provides the typed error kinds described in the
// error-handling design: each kind knows the HTTP status family it maps to,
// so handlers translate errors into responses without re-deriving status
// codes from string matching.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies which error-kind table row an error belongs to.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindQuota      Kind = "quota"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindUpstream   Kind = "upstream"
	KindDecode     Kind = "decode"
	KindStorage    Kind = "storage"
)

// Error is the typed application error. Code is the machine-readable value
// returned in the JSON body's "error" field; Message is the human-readable
// string; Details carries extra payload fields (e.g. session_id on a 409).
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]interface{}
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus returns the status code this error kind maps to (§7).
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		if e.Code == "forbidden" {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case KindQuota:
		if e.Code == "meeting_limit" {
			return http.StatusForbidden
		}
		return http.StatusTooManyRequests
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	case KindDecode:
		return http.StatusInternalServerError
	case KindStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func newErr(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, cause: cause}
}

func Validation(code, message string) *Error { return newErr(KindValidation, code, message, nil) }

func Unauthenticated(message string) *Error {
	return newErr(KindAuth, "unauthenticated", message, nil)
}

func Forbidden(message string) *Error {
	return newErr(KindAuth, "forbidden", message, nil)
}

func Quota(code, message string) *Error { return newErr(KindQuota, code, message, nil) }

// NotFound never distinguishes "doesn't exist" from "not owned" in its
// message, per Invariant I-OwnerOnly.
func NotFound(message string) *Error { return newErr(KindNotFound, "not_found", message, nil) }

func Conflict(code, message string, details map[string]interface{}) *Error {
	e := newErr(KindConflict, code, message, nil)
	e.Details = details
	return e
}

func Upstream(message string, cause error) *Error {
	return newErr(KindUpstream, "upstream_error", message, cause)
}

func Decode(message string, cause error) *Error {
	return newErr(KindDecode, "decode_error", message, cause)
}

func Storage(message string, cause error) *Error {
	return newErr(KindStorage, "storage_error", message, cause)
}

// As is a small convenience wrapper over errors.As for the common case of
// pulling an *Error out of a wrapped error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
