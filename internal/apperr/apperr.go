// Package apperr defines the error taxonomy shared by all handlers and
// services. Callers branch on Kind instead of matching message substrings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindAuthRequired
	KindValidation
	KindNotFound
	KindAccessDenied
	KindConflict
	KindDatabase
	KindExternal
	KindRateLimited
)

// Fixed user-facing messages the client relies on.
const (
	MsgAuthRequired = "Authentication required"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the Kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// Message returns the user-facing message for err. Wrapped causes are not
// exposed; foreign errors fall back to their own message.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return err.Error()
}

// HTTPStatus maps an error kind to its conventional status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindAuthRequired:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAccessDenied:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindExternal:
		return http.StatusBadGateway
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
