// Package errors provides error handling conventions for the prefs CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, exit code constants, and
// re-exports of the github.com/cockroachdb/errors helpers used throughout
// the module.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, prefserrors.ErrUnknownKind) {
//	    // handle bad --type flag
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := prefserrors.NewUserError(prefserrors.ErrInvalidConfig, "Check your config file")
//	os.Exit(prefserrors.ExitCode(err))
package errors
