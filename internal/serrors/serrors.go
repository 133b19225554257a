// Package serrors carries a semantic kind alongside an error so the HTTP layer
// can pick a status code without string matching.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a sentinel describing what went wrong, independent of the cause.
type Kind interface {
	error
	isKind()
}

type kind struct{ name string }

func (k kind) Error() string { return k.name }
func (k kind) isKind()       {}

// NewKind creates a new sentinel kind.
func NewKind(name string) Kind { return kind{name: name} }

var (
	ErrNotFound     = NewKind("NOT_FOUND")
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	ErrForbidden    = NewKind("FORBIDDEN")
	ErrBadRequest   = NewKind("BAD_REQUEST")
	ErrConflict     = NewKind("CONFLICT")
	ErrInternal     = NewKind("INTERNAL")
	ErrRateLimited  = NewKind("RATE_LIMITED")
)

// Error pairs a Kind with an optional message and cause.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With builds an error of kind k with a formatted message.
func With(k Kind, format string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an error of kind k around cause err.
func Wrap(k Kind, err error, format string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is matches either the kind or anything in the wrapped chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	return e.err != nil && errors.Is(e.err, target)
}

// Kind returns the semantic kind of e.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message without the wrapped cause appended.
func (e *Error) Message() string {
	if e.msg == "" {
		return e.Error()
	}
	return e.msg
}

// KindOf walks err's chain and returns the first Kind found, or ErrInternal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) && se.kind != nil {
		return se.kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ErrInternal
}
