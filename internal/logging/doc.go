// Package logging provides structured logging for the prefs CLI and the
// resolver using slog.
//
// Text output goes through [Handler], which colorizes TTY output and masks
// credential-looking values (tokens, passwords, URLs with embedded
// passwords). JSON output uses the standard library handler.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	r := resolver.New(resolver.Options{Logger: logger})
//
// Resolver lookups log at Debug; pass -vv to see which source answered
// each key.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
