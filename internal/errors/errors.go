// Package errors wraps pkg/errors so every error created or annotated inside
// funntour carries the stack of the point where it entered our code.
package errors

import (
	stderrors "errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// New returns an error with the given text and a stack trace.
func New(text string) error {
	return pkgerrors.New(text)
}

// Errorf formats an error message and records a stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// AsType returns the first error in err's chain of type T.
func AsType[T error](err error) (T, bool) {
	var target T
	ok := stderrors.As(err, &target)

	return target, ok
}

// Wrap annotates err with message and a stack trace. A nil err stays nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records a stack trace on errors returned by third-party code.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Stack renders the deepest stack trace recorded in err's chain, or "" when
// none was recorded.
func Stack(err error) string {
	var deepest stackTracer
	for cur := err; cur != nil; cur = stderrors.Unwrap(cur) {
		if st, ok := cur.(stackTracer); ok {
			deepest = st
		}
	}
	if deepest == nil {
		return ""
	}

	return fmt.Sprintf("%+v", deepest.StackTrace())
}
