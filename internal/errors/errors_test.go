package errors

import (
	"io/fs"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{"wraps message", NewExitError(New("document is not a JSON object"), ExitSystem), "document is not a JSON object"},
		{"status only", NewExitError(nil, ExitUser), "exit code 1"},
		{"suggestion not in message", NewConfigError(New("log_format must be text or json")), "log_format must be text or json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Chain(t *testing.T) {
	wrapped := Wrap(ErrUnknownKind, `kind "color"`)
	exitErr := NewUserError(wrapped, "Run: prefs keys")

	if !Is(exitErr, ErrUnknownKind) {
		t.Error("Is() should find the sentinel through ExitError and Wrap")
	}
	if Unwrap(exitErr) != wrapped {
		t.Error("Unwrap() should return the wrapped error")
	}

	outer := Wrap(exitErr, "get HideSettings")
	var target *ExitError
	if !As(outer, &target) {
		t.Fatal("As() should find the ExitError under a wrap")
	}
	if target.Suggestion != "Run: prefs keys" {
		t.Errorf("Suggestion = %q, want %q", target.Suggestion, "Run: prefs keys")
	}

	if NewExitError(nil, ExitUser).Unwrap() != nil {
		t.Error("status-only ExitError should unwrap to nil")
	}
}

func TestConstructors(t *testing.T) {
	base := New("boom")
	tests := []struct {
		name           string
		err            *ExitError
		wantCode       int
		wantSuggestion string
	}{
		{"exit error", NewExitError(base, ExitSystem), ExitSystem, ""},
		{"with suggestion", NewExitErrorWithSuggestion(base, ExitUser, "check the key"), ExitUser, "check the key"},
		{"user error", NewUserError(base, "pass --type"), ExitUser, "pass --type"},
		{"system error", NewSystemError(base, "check permissions"), ExitSystem, "check permissions"},
		{"config error", NewConfigError(base), ExitUser, "Run: prefs doctor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Err != base {
				t.Error("constructor dropped the underlying error")
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Suggestion != tt.wantSuggestion {
				t.Errorf("Suggestion = %q, want %q", tt.err.Suggestion, tt.wantSuggestion)
			}
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{ErrMissingKey, ErrNotFound, ErrInvalidConfig, ErrUnknownKind, ErrInvalidDefault}
	for i, a := range sentinels {
		if a.Error() == "" {
			t.Errorf("sentinel %d has an empty message", i)
		}
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %q matches %q", a, b)
			}
		}
	}

	marked := Mark(New("HideSettings missing"), ErrNotFound)
	if !Is(marked, ErrNotFound) {
		t.Error("Mark() should make the error match ErrNotFound")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", fs.ErrPermission, ExitSystem},
		{"user error", NewUserError(ErrMissingKey, ""), ExitUser},
		{"wrapped status", Wrap(NewExitError(nil, ExitUser), "has"), ExitUser},
		{"system error", NewSystemError(New("disk"), ""), ExitSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
