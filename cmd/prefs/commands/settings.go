package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prefs/internal/errors"
	"github.com/thoreinstein/prefs/pkg/resolver"
)

// Setting groups accepted by the settings command.
const (
	groupUI       = "ui"
	groupBranding = "branding"
	groupMenu     = "menu"
	groupAll      = "all"
)

var settingsJSON bool

func init() {
	settingsCmd.Flags().BoolVar(&settingsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings [ui|branding|menu|all]",
	Short: "Show resolved settings by group",
	Long: `Show the resolved values of a group of catalogued settings.

Groups:
  ui        the UI visibility flags
  branding  the branding strings (unset when no source provides them)
  menu      the custom menu items that carry a title
  all       every catalogued key with the source it came from (default)`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{groupUI, groupBranding, groupMenu, groupAll},
	RunE:      runSettings,
}

func runSettings(c *cobra.Command, args []string) error {
	group := groupAll
	if len(args) == 1 {
		group = args[0]
	}

	r, err := newResolver(c)
	if err != nil {
		return err
	}
	return writeSettings(c.OutOrStdout(), r, group, settingsJSON)
}

func writeSettings(w io.Writer, r *resolver.Resolver, group string, asJSON bool) error {
	switch group {
	case groupUI:
		values := r.AllUIHidingSettings()
		if asJSON {
			return writeJSON(w, values)
		}
		return writeSettingsTable(w, sortedKeys(values), func(k resolver.Key) string {
			return formatValue(values[k])
		})

	case groupBranding:
		values := r.AllBrandingSettings()
		if asJSON {
			return writeJSON(w, values)
		}
		return writeSettingsTable(w, sortedKeys(values), func(k resolver.Key) string {
			return truncate(formatValue(values[k]), 60)
		})

	case groupMenu:
		items := r.MenuItems()
		if asJSON {
			return writeJSON(w, items)
		}
		return writeMenu(w, items)

	case groupAll:
		outs := make([]*getOutput, 0, len(resolver.Catalogue()))
		for _, info := range resolver.Catalogue() {
			out, err := resolveKey(r, info.Key, "", "")
			if err != nil {
				return err
			}
			outs = append(outs, out)
		}
		if asJSON {
			return writeJSON(w, outs)
		}
		return writeResolutions(w, outs)
	}

	return errors.NewUserError(
		errors.Newf("unknown settings group %q", group),
		fmt.Sprintf("valid groups: %s, %s, %s, %s", groupUI, groupBranding, groupMenu, groupAll))
}

func writeSettingsTable(w io.Writer, keys []resolver.Key, value func(resolver.Key) string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, value(k))
	}
	return tw.Flush()
}

func writeResolutions(w io.Writer, outs []*getOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p := newPrinter(w)
	p.w = tw
	for _, out := range outs {
		p.printf("%s\t%s\t%s\n", out.Key, truncate(formatValue(out.Value), 60), p.sourceLabel(out.Source))
	}
	return tw.Flush()
}

func writeMenu(w io.Writer, items []resolver.MenuItem) error {
	p := newPrinter(w)
	if len(items) == 0 {
		p.printf("%s\n", p.paint(dimColor, "(no custom menu items)"))
		return nil
	}
	for _, item := range items {
		p.printf("%s\n", p.paint(boldColor, item.Title))
		if item.URL != "" {
			p.printf("  url:    %s\n", item.URL)
		}
		if item.Action != "" {
			p.printf("  action: %s\n", item.Action)
		}
	}
	return nil
}
