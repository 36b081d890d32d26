package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thoreinstein/prefs/internal/errors"
	"github.com/thoreinstein/prefs/internal/logging"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidNamespace indicates a namespace that cannot name a directory.
	ErrInvalidNamespace = errors.New("invalid namespace")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidLogFormat indicates an unknown log_format value.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, &FieldError{Field: "version", Value: strconv.Itoa(cfg.Version), Err: ErrUnsupportedVersion})
	}

	if !validNamespace(cfg.Namespace) {
		errs = append(errs, &FieldError{Field: "namespace", Value: cfg.Namespace, Err: ErrInvalidNamespace})
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{"shared_root", cfg.SharedRoot},
		{"local_path", cfg.LocalPath},
		{"document_path", cfg.DocumentPath},
	} {
		if err := validatePath(f.value); err != nil {
			errs = append(errs, &FieldError{Field: f.name, Value: f.value, Err: err})
		}
	}

	switch logging.Format(cfg.LogFormat) {
	case logging.FormatText, logging.FormatJSON, "":
	default:
		errs = append(errs, &FieldError{Field: "log_format", Value: cfg.LogFormat, Err: ErrInvalidLogFormat})
	}

	return errs
}

func validNamespace(ns string) bool {
	if ns == "" || ns == "." || ns == ".." {
		return false
	}
	return !strings.ContainsAny(ns, `/\`+"\x00")
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists. Empty paths mean "use default".
func validatePath(path string) error {
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// FieldError represents an error for a specific configuration field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
