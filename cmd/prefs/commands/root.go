// Package commands implements the CLI commands for prefs.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prefs/cmd"
	"github.com/thoreinstein/prefs/internal/config"
	"github.com/thoreinstein/prefs/internal/errors"
	"github.com/thoreinstein/prefs/internal/logging"
	"github.com/thoreinstein/prefs/internal/paths"
	"github.com/thoreinstein/prefs/pkg/resolver"
)

// debugEnv raises verbosity when no -v flag is given: "1"/"true" for debug,
// "2" for trace.
const debugEnv = "PREFS_DEBUG"

var (
	// configFile holds the value of the --config flag.
	configFile string

	// documentFlag holds the value of the --document flag.
	documentFlag string

	// verbosity holds the count of -v flags.
	verbosity int

	// quiet holds the value of the -q/--quiet flag.
	quiet bool

	// logFormat holds the value of the --log-format flag.
	logFormat string

	// logFile holds the path to the log file.
	logFile string
)

var (
	// cfg is the loaded configuration, nil when loading failed.
	cfg *config.Config

	// configLoadErr holds any error that occurred during config loading.
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or the prefs config directory)")
	pf.StringVar(&documentFlag, "document", "",
		"path of the managed-settings document (overrides config)")
	pf.CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	pf.BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "",
		"log format: text, json (default from config)")
	pf.StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("prefs version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.NewUserError(err, fmt.Sprintf("Run '%s --help' for usage", c.CommandPath()))
	})
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect layered managed preferences",
	Long: `prefs resolves managed preference values from three layered sources:

  shared    a YAML file in a namespace directory shared between processes
  local     a per-user TOML file written by a management channel
  document  a JSON managed-settings document in the Documents directory

A lookup returns the first value of the requested type in that order,
falling back to the key's default when no source has one.`,
	Example: `  # Resolve a catalogued key
  prefs get HideConnectMenubar

  # Resolve any key with an explicit type and default
  prefs get SupportEmail --type string --default help@example.com

  # Show which sources are available
  prefs sources

  # Check sources for problems
  prefs doctor`,
	PersistentPreRunE: func(c *cobra.Command, _ []string) error {
		// Initialize logging first
		if err := setupLogging(c); err != nil {
			return err
		}
		return checkConfig(c)
	},
	Run: func(c *cobra.Command, _ []string) {
		_ = c.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(c *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format := logging.Format(logFormat)
	if format == "" && cfg != nil {
		format = logging.Format(cfg.LogFormat)
	}
	switch format {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return errors.NewUserError(errors.Newf("unknown log format %q", format), "use text or json")
	}

	handlers := []slog.Handler{
		logging.New(logging.Config{Level: level, Format: format, Output: c.ErrOrStderr()}).Handler(),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig fails commands that depend on the config when it did not load.
// Commands that report on the config themselves are exempt.
func checkConfig(c *cobra.Command) error {
	switch c.Name() {
	case "help", "version", "doctor", genDocCmd.Name():
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// resolverOptions builds resolver options from the loaded config and the
// --document flag. Defaults apply when the config did not load.
func resolverOptions(c *cobra.Command) (resolver.Options, error) {
	logger := logging.FromContext(c.Context())

	opts := resolver.Options{Logger: logger}
	if cfg != nil {
		opts = cfg.ResolverOptions(logger)
	}
	if documentFlag != "" {
		path, err := paths.ExpandHome(documentFlag)
		if err != nil {
			return opts, errors.NewUserError(err, "pass an absolute --document path")
		}
		opts.DocumentPath = path
	}
	return opts.WithDefaults(), nil
}

// newResolver binds a resolver for the current invocation.
func newResolver(c *cobra.Command) (*resolver.Resolver, error) {
	opts, err := resolverOptions(c)
	if err != nil {
		return nil, err
	}
	return resolver.New(opts), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ReportError writes err and any suggestion it carries to w. Exit errors
// without an underlying error carry only a status and print nothing.
func ReportError(w io.Writer, err error) {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err == nil {
			return
		}
		fmt.Fprintf(w, "Error: %v\n", exitErr.Err)
		if exitErr.Suggestion != "" {
			fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
