package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/prefs/internal/errors"
	"github.com/thoreinstein/prefs/pkg/resolver"
)

var (
	keysJSON        bool
	keysInteractive bool
	keysCategory    string
)

func init() {
	keysCmd.Flags().BoolVar(&keysJSON, "json", false, "Output in JSON format")
	keysCmd.Flags().BoolVarP(&keysInteractive, "interactive", "i", false,
		"pick a key with a fuzzy finder and resolve it")
	keysCmd.Flags().StringVar(&keysCategory, "category", "", "only list keys in this category")
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the catalogued preference keys",
	Long: `List every catalogued key with its category, type and default.

With --interactive, pick a key with a fuzzy finder; the preview shows
the value each source holds and the selected key is resolved.`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

func runKeys(c *cobra.Command, _ []string) error {
	infos := filterCatalogue(resolver.Catalogue(), resolver.Category(keysCategory))
	if keysCategory != "" && len(infos) == 0 {
		return errors.NewUserError(
			errors.Newf("no keys in category %q", keysCategory),
			"run 'prefs keys' to see the categories")
	}

	if keysInteractive {
		if keysJSON {
			return errors.NewUserError(errors.New("--json and --interactive are mutually exclusive"), "")
		}
		r, err := newResolver(c)
		if err != nil {
			return err
		}
		return runInteractiveKeys(c.OutOrStdout(), r, infos)
	}

	if keysJSON {
		return writeJSON(c.OutOrStdout(), infos)
	}
	return writeKeys(c.OutOrStdout(), infos)
}

func filterCatalogue(infos []resolver.KeyInfo, category resolver.Category) []resolver.KeyInfo {
	if category == "" {
		return infos
	}
	var out []resolver.KeyInfo
	for _, info := range infos {
		if info.Category == category {
			out = append(out, info)
		}
	}
	return out
}

func writeKeys(w io.Writer, infos []resolver.KeyInfo) error {
	p := newPrinter(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p.w = tw

	p.printf("%s\t%s\t%s\t%s\n",
		p.paint(boldColor, "KEY"),
		p.paint(boldColor, "CATEGORY"),
		p.paint(boldColor, "TYPE"),
		p.paint(boldColor, "DEFAULT"))
	for _, info := range infos {
		p.printf("%s\t%s\t%s\t%s\n", info.Key, info.Category, info.Kind, formatValue(info.Default))
	}
	return tw.Flush()
}

func runInteractiveKeys(w io.Writer, r *resolver.Resolver, infos []resolver.KeyInfo) error {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No keys found.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		infos,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", infos[i].Key, infos[i].Category)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return keyPreview(r, infos[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive key selection failed")
	}

	out, err := resolveKey(r, infos[idx].Key, "", "")
	if err != nil {
		return err
	}
	return writeGet(w, out, false)
}

// keyPreview describes a key and the raw value each source holds for it.
func keyPreview(r *resolver.Resolver, info resolver.KeyInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Key:      %s\n", info.Key)
	fmt.Fprintf(&b, "Category: %s\n", info.Category)
	fmt.Fprintf(&b, "Type:     %s\n", info.Kind)
	fmt.Fprintf(&b, "Default:  %s\n\n", formatValue(info.Default))

	values := r.Values(info.Key)
	for _, src := range []resolver.SourceName{resolver.SourceShared, resolver.SourceLocal, resolver.SourceDocument} {
		raw, ok := values[src]
		switch {
		case !ok:
			fmt.Fprintf(&b, "%-9s -\n", src)
		case resolver.Conforms(info.Kind, raw):
			fmt.Fprintf(&b, "%-9s %s\n", src, raw)
		default:
			fmt.Fprintf(&b, "%-9s %s (ignored, not %s)\n", src, raw, info.Kind)
		}
	}
	return b.String()
}
