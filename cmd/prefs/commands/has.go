package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/prefs/internal/errors"
	"github.com/thoreinstein/prefs/pkg/resolver"
)

func init() {
	rootCmd.AddCommand(hasCmd)
}

var hasCmd = &cobra.Command{
	Use:   "has <key>",
	Short: "Check whether any source holds a key",
	Long: `Check whether any source holds a non-null value for a key, whatever its
type. Prints the source that holds it.

Exit codes:
  0 - a source holds the key
  1 - no source holds the key`,
	Example: `  prefs has BrandingName && echo "branded"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runHas,
}

func runHas(c *cobra.Command, args []string) error {
	r, err := newResolver(c)
	if err != nil {
		return err
	}

	key := resolver.Key(args[0])
	p := newPrinter(c.OutOrStdout())
	if !r.HasValue(key) {
		if !quiet {
			p.printf("%s: %s\n", key, p.paint(dimColor, "absent"))
		}
		return errors.NewExitError(nil, errors.ExitUser)
	}

	if !quiet {
		res, err := r.Raw(key)
		if err != nil {
			return errors.Wrapf(err, "reading %s", key)
		}
		p.printf("%s: present %s\n", key, p.sourceLabel(res.Source))
	}
	return nil
}
