// Package serrors provides semantic error kinds. A kind classifies an error
// (conflict, upstream unavailable, malformed payload) independently of its
// message, so callers can branch with errors.Is without string matching.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is implemented by every sentinel created with NewKind.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new comparable kind sentinel.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrBadRequest marks input or payloads that could not be understood.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrConflict marks an operation rejected because of the current state,
	// e.g. a second submission while one is still in flight.
	ErrConflict = NewKind("CONFLICT")
	// ErrInternal marks a broken invariant inside the process.
	ErrInternal = NewKind("INTERNAL")
	// ErrUnavailable marks a remote collaborator that answered with a failure status.
	ErrUnavailable = NewKind("UNAVAILABLE")
	// ErrRateLimited marks a caller that exceeded its request budget.
	ErrRateLimited = NewKind("RATE_LIMITED")
)

// Error carries a kind, an optional cause and an optional message.
//
// errors.Is and errors.As match against both the kind and the cause.
//
// Error() formatting:
//   - msg and cause: "<msg>: <cause>"
//   - msg only: "<msg>"
//   - cause only: "<cause>"
//   - neither: the kind's name
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With builds an error of kind k with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap builds an error of kind k that wraps err.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly builds an error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
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
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.err }

// Is matches target against the kind first, then the cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As matches target against the kind first, then the cause chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the kind sentinel, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to the error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause, or nil.
func (e *Error) Cause() error { return e.err }

// KindOf returns the kind of the first *Error in err's chain, or nil.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.kind
	}

	return nil
}
