// Package apperror classifies every failure that crosses the service
// boundary into one of a small set of kinds. Lower layers return plain
// errors; the orchestrator wraps them into an *Error before they reach a
// caller, so no raw internal detail leaks.
package apperror

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	// KindClient marks malformed or missing input. Safe message surfaced.
	KindClient Kind = iota + 1
	// KindAuth marks a legitimately rejected request (verification failed).
	KindAuth
	// KindNotFound marks a missing channel, BU mapping, or session.
	KindNotFound
	// KindConfiguration marks operator misconfiguration (verifier endpoint
	// or credential absent).
	KindConfiguration
	// KindInternal marks everything else. Callers only ever see a generic
	// message; detail stays in the server logs.
	KindInternal
)

// Error carries a caller-safe message alongside the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the classification of err. Unclassified errors are
// internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message for err. Unclassified errors
// surface a generic message only.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal {
			return "Internal Server Error"
		}
		return appErr.Message
	}
	return "Internal Server Error"
}
