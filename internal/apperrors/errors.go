// Package apperrors defines the error taxonomy of the search command and
// maps each class of failure to a process exit code.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage marks a command line that cannot be acted on; usage is shown.
	ErrUsage = errors.New("usage error")
	// ErrArgumentParse marks a malformed positional argument.
	ErrArgumentParse = errors.New("argument parse error")
	// ErrFetch marks a page that could not be retrieved.
	ErrFetch = errors.New("fetch error")
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitFetch   = 2
)

// AppError ties a sentinel and an optional underlying cause to an exit code
type AppError struct {
	Err      error
	Message  string
	Cause    error
	ExitCode int
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// New creates an AppError with a fixed message
func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

// Newf creates an AppError with a formatted message
func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// Fetch wraps a retrieval failure so that it carries the fetch exit code.
func Fetch(source string, err error) error {
	return &AppError{
		Err:      ErrFetch,
		Message:  source,
		Cause:    err,
		ExitCode: ExitFetch,
	}
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitOK
	case errors.Is(err, ErrFetch):
		return ExitFetch
	default:
		return ExitFailure
	}
}
