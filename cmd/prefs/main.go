// Package main is the entry point for the prefs CLI.
package main

import (
	"os"

	"github.com/thoreinstein/prefs/cmd/prefs/commands"
	"github.com/thoreinstein/prefs/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil {
		commands.ReportError(os.Stderr, err)
	}
	os.Exit(errors.ExitCode(err))
}
