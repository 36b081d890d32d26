package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		wantJSON bool
	}{
		{"json", FormatJSON, true},
		{"text", FormatText, false},
		{"unknown falls back to text", Format("yaml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: tt.format, Output: &buf})

			logger.Info("lookup resolved", "key", "HideSettings", "source", "local", "hit", true)

			out := buf.String()
			var parsed map[string]any
			isJSON := json.Unmarshal([]byte(out), &parsed) == nil
			if isJSON != tt.wantJSON {
				t.Fatalf("JSON output = %v, want %v\noutput: %s", isJSON, tt.wantJSON, out)
			}
			if tt.wantJSON {
				if parsed["msg"] != "lookup resolved" || parsed["source"] != "local" {
					t.Errorf("unexpected JSON record: %v", parsed)
				}
				return
			}
			for _, want := range []string{"INFO", "lookup resolved", "key=HideSettings", "source=local", "hit=true"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q: %s", want, out)
				}
			}
		})
	}
}

func TestNew_NilOutput(t *testing.T) {
	if New(Config{Level: slog.LevelInfo}) == nil {
		t.Fatal("New() with nil output returned nil")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		config  slog.Level
		emit    slog.Level
		visible bool
	}{
		{"warning at default verbosity", slog.LevelWarn, slog.LevelWarn, true},
		{"info hidden at default verbosity", slog.LevelWarn, slog.LevelInfo, false},
		{"debug at -vv", slog.LevelDebug, slog.LevelDebug, true},
		{"trace hidden at -vv", slog.LevelDebug, LevelTrace, false},
		{"trace at -vvv", LevelTrace, LevelTrace, true},
		{"error above everything", slog.LevelError + 4, slog.LevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.config, Format: FormatText, Output: &buf})

			logger.Log(t.Context(), tt.emit, "source consulted", "source", "shared")

			if got := buf.Len() > 0; got != tt.visible {
				t.Errorf("visible = %v, want %v (output %q)", got, tt.visible, buf.String())
			}
		})
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("discard logger should not enable debug records")
	}
	logger.Error("document store load failed", "path", "/nonexistent")
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{7, LevelTrace},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
	if LevelTrace >= slog.LevelDebug {
		t.Error("LevelTrace must sort below LevelDebug")
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	if !logger.Enabled(t.Context(), LevelTrace) {
		t.Error("ForTest logger should capture trace records")
	}
	logger.Log(t.Context(), LevelTrace, "source consulted", "source", "document")
}

func TestTestWriter_Write(t *testing.T) {
	tw := &testWriter{t: t}
	for _, in := range []string{"with newline\n", "without newline", ""} {
		n, err := tw.Write([]byte(in))
		if err != nil {
			t.Fatalf("Write(%q) error = %v", in, err)
		}
		if n != len(in) {
			t.Errorf("Write(%q) = %d, want %d", in, n, len(in))
		}
	}
}

func TestContext(t *testing.T) {
	logger := New(Config{Level: slog.LevelInfo, Output: &bytes.Buffer{}})

	if got := FromContext(NewContext(t.Context(), logger)); got != logger {
		t.Error("FromContext() did not return the stored logger")
	}
	if got := FromContext(t.Context()); got != slog.Default() {
		t.Error("FromContext() without a logger should return slog.Default()")
	}
}
