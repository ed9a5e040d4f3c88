// Package errors contains helpers for wrapping errors with stack traces and exit codes.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Exit codes used by the ccloc binary.
const (
	ExitCodeGeneric = 1
	ExitCodeUsage   = 2
)

// New creates a new error with a stack trace.
func New(message string) error {
	return goerrors.Wrap(errors.New(message), 1)
}

// Errorf creates a new error and wraps in an Error type that contains the stack trace.
func Errorf(message string, args ...any) error {
	err := fmt.Errorf(message, args...)
	return goerrors.Wrap(err, 1)
}

// ErrorWithExitCode is a custom error that is used to specify the app exit code.
type ErrorWithExitCode struct {
	Err      error
	ExitCode int
}

func (err ErrorWithExitCode) Error() string {
	return err.Err.Error()
}

func (err ErrorWithExitCode) Unwrap() error {
	return err.Err
}

// WithExitCode attaches an exit code to err. A nil err stays nil.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return ErrorWithExitCode{Err: err, ExitCode: code}
}

// WithStackTrace wraps the given error in an Error type that contains the stack trace. If the given error already has a stack trace,
// it is used directly. If the given error is nil, return nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix wraps the given error with a stack trace and a message prefix.
func WithStackTraceAndPrefix(err error, message string, args ...any) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// ExitCode returns the exit code carried by err, ExitCodeGeneric for any other non-nil error, and 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var withCode ErrorWithExitCode
	if errors.As(err, &withCode) {
		return withCode.ExitCode
	}
	return ExitCodeGeneric
}

// ErrorWithStackTrace returns a string that contains both the error message and the callstack.
func ErrorWithStackTrace(err error) string {
	if err == nil {
		return ""
	}

	var goErr *goerrors.Error
	if errors.As(err, &goErr) {
		return goErr.ErrorStack()
	}
	return err.Error()
}

// As is errors.As re-exported so callers only import this package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is errors.Is re-exported so callers only import this package.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}
