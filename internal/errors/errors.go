package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrMissingKey indicates a required setting key argument is missing.
	ErrMissingKey = crdb.New("key is required")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrUnknownKind indicates a value kind name that is not supported.
	ErrUnknownKind = crdb.New("unknown value kind")

	// ErrInvalidDefault indicates a --default value that does not decode
	// into the requested kind.
	ErrInvalidDefault = crdb.New("invalid default value")
)

// Thin re-exports so callers only import one errors package.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Unwrap = crdb.Unwrap
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       code,
		Suggestion: suggestion,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return NewExitErrorWithSuggestion(err, ExitUser, suggestion)
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return NewExitErrorWithSuggestion(err, ExitSystem, suggestion)
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return NewExitErrorWithSuggestion(err, ExitUser, "Run: prefs doctor")
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err, ExitSuccess for nil, and
// ExitSystem for errors without an ExitError in their chain.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitSystem
}
