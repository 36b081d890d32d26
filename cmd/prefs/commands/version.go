package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prefs/cmd"
	"github.com/thoreinstein/prefs/internal/config"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date and Go version of prefs, and the config file in use.`,
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		p := newPrinter(c.OutOrStdout())
		p.printf("prefs version %s\n", cmd.Version)
		p.printf("  commit:    %s\n", cmd.Commit)
		p.printf("  built:     %s\n", cmd.Date)
		p.printf("  go:        %s\n", runtime.Version())

		file := config.UsedFile()
		if file == "" {
			file = p.paint(dimColor, "(defaults)")
		}
		p.printf("  config:    %s\n", file)
	},
}
