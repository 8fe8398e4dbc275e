// Package errs defines the error kinds reported by mesh operations.
//
// Every error carries a Kind: InvalidValue for malformed input detected
// before any state is modified, and Failure for an algorithm that could not
// complete on otherwise well-formed input. Both kinds match their sentinel
// with errors.Is:
//
//	if errors.Is(err, errs.ErrInvalidValue) { ... }
package errs

import (
	"fmt"
	"strings"
)

// Kind categorizes the error.
type Kind string

const (
	KindInvalidValue Kind = "invalid_value"
	KindFailure      Kind = "failure"
)

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidValue = &Error{Kind: KindInvalidValue}
	ErrFailure      = &Error{Kind: KindFailure}
)

// Error is the structured error type returned by mesh operations.
type Error struct {
	Cause  error
	Kind   Kind
	Op     string
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Invalid returns an InvalidValue error for operation op.
func Invalid(op, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidValue, Op: op, Detail: detail(format, args)}
}

// Fail returns a Failure error for operation op.
func Fail(op, format string, args ...any) *Error {
	return &Error{Kind: KindFailure, Op: op, Detail: detail(format, args)}
}

// Wrap returns a Failure error for op caused by err. If err already is an
// *Error its kind is kept.
func Wrap(op string, err error) *Error {
	kind := KindFailure
	if e, ok := err.(*Error); ok {
		kind = e.Kind
	}
	return &Error{Kind: kind, Op: op, Cause: err}
}

// KindOf returns the kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

func detail(format string, args []any) string {
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}
