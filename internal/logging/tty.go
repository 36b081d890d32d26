package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ColorEnv selects color output: "always", "never", or "auto" (the default).
const ColorEnv = "PREFS_COLOR"

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether ANSI color codes should be written to w.
// PREFS_COLOR=always or never decides outright. Otherwise color needs a
// terminal, no NO_COLOR variable, and a TERM other than "dumb".
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w), os.LookupEnv)
}

func supportsColor(isTTY bool, lookupEnv func(string) (string, bool)) bool {
	if mode, ok := lookupEnv(ColorEnv); ok {
		switch mode {
		case "always":
			return true
		case "never":
			return false
		}
	}

	// Respect NO_COLOR standard (https://no-color.org)
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return false
	}

	if v, _ := lookupEnv("TERM"); v == "dumb" {
		return false
	}

	return isTTY
}
