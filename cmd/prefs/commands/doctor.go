package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prefs/internal/config"
	"github.com/thoreinstein/prefs/internal/doctor"
	"github.com/thoreinstein/prefs/internal/errors"
	"github.com/thoreinstein/prefs/pkg/resolver"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose preference source issues",
	Long: `Run diagnostic checks on the prefs config and every preference source.

Checks that the config loads, that the shared namespace can be bound,
that each store file parses, that the document is a JSON object, and
that catalogued keys hold values of their declared type. Values of the
wrong type are silently skipped during lookups; doctor makes them visible.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func runDoctor(c *cobra.Command, _ []string) error {
	opts, err := resolverOptions(c)
	if err != nil {
		return err
	}
	r := resolver.New(opts)

	runner := doctor.NewSourceRunner(opts, r, doctor.NewConfigCheck(config.UsedFile(), configLoadErr))
	report := runner.Run()

	if err := outputDoctorReport(c.OutOrStdout(), report); err != nil {
		return err
	}
	return doctorExit(report)
}

// doctorExit maps a report to the command's exit status.
func doctorExit(report *doctor.DoctorReport) error {
	switch report.Worst() {
	case doctor.SeverityError:
		return errors.NewExitError(nil, errors.ExitSystem)
	case doctor.SeverityWarning:
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return writeJSON(w, report)
	}

	return outputDoctorText(w, report, doctorVerbose)
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport, showAll bool) error {
	p := newPrinter(w)

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		p.printf("%s [%s] %s: %s\n", p.statusIcon(result.Status), result.Category, result.Name, result.Message)

		if showAll {
			for _, k := range sortedDetailKeys(result.Details) {
				p.printf("    %s: %v\n", k, result.Details[k])
			}
		} else if mismatches, ok := result.Details["mismatches"].([]string); ok {
			for _, m := range mismatches {
				p.printf("    %s\n", m)
			}
		}

		if result.FixHint != "" && problem {
			p.printf("  hint: %s\n", result.FixHint)
		}
	}

	// Print summary
	if hasOutput {
		p.printf("\n")
	}

	p.printf("Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func (p *printer) statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return p.paint(sourceColor, "✓")
	case doctor.SeverityInfo:
		return p.paint(headerColor, "ℹ")
	case doctor.SeverityWarning:
		return p.paint(warnColor, "⚠")
	case doctor.SeverityError:
		return p.paint(errorColor, "✗")
	default:
		return "?"
	}
}
