package commands

import (
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prefs/pkg/resolver"
)

var sourcesJSON bool

func init() {
	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show the preference sources in priority order",
	Long: `Show each preference source in lookup order with whether it is
available, the file it reads and how many keys it holds.

The shared source is unavailable when its namespace directory does not
exist. The document source is unavailable until a document has loaded.`,
	Args: cobra.NoArgs,
	RunE: runSources,
}

// sourceInfo describes a source in JSON output format.
type sourceInfo struct {
	Name      resolver.SourceName `json:"name"`
	Available bool                `json:"available"`
	Path      string              `json:"path,omitempty"`
	Namespace string              `json:"namespace,omitempty"`
	Keys      int                 `json:"keys"`
}

func runSources(c *cobra.Command, _ []string) error {
	opts, err := resolverOptions(c)
	if err != nil {
		return err
	}
	r := resolver.New(opts)
	infos := describeSources(r, opts)

	if sourcesJSON {
		return writeJSON(c.OutOrStdout(), infos)
	}
	return writeSources(c.OutOrStdout(), infos)
}

// describeSources reports each source of r. opts supplies the paths of
// sources that could not be bound.
func describeSources(r *resolver.Resolver, opts resolver.Options) []sourceInfo {
	avail := r.SourceAvailability()

	shared := sourceInfo{Name: resolver.SourceShared, Available: avail[resolver.SourceShared], Namespace: opts.Namespace}
	if s, ok := r.Shared().(*resolver.SharedStore); ok {
		shared.Path = s.Path()
		shared.Keys = len(s.Keys())
	}

	local := sourceInfo{Name: resolver.SourceLocal, Available: avail[resolver.SourceLocal], Path: opts.LocalPath}
	if s, ok := r.Local().(*resolver.LocalStore); ok {
		local.Path = s.Path()
		local.Keys = len(s.Keys())
	}

	doc := sourceInfo{Name: resolver.SourceDocument, Available: avail[resolver.SourceDocument], Path: r.DocumentPath()}
	if r.Document().Loaded() {
		doc.Path = r.Document().Path()
		doc.Keys = len(r.Document().Keys())
	}

	return []sourceInfo{shared, local, doc}
}

func writeSources(w io.Writer, infos []sourceInfo) error {
	p := newPrinter(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p.w = tw

	p.printf("%s\t%s\t%s\t%s\n",
		p.paint(boldColor, "SOURCE"),
		p.paint(boldColor, "STATUS"),
		p.paint(boldColor, "KEYS"),
		p.paint(boldColor, "PATH"))
	for _, info := range infos {
		status := p.paint(sourceColor, "available")
		if !info.Available {
			status = p.paint(warnColor, "unavailable")
		}
		path := info.Path
		if path == "" && info.Namespace != "" {
			path = "namespace " + info.Namespace
		}
		p.printf("%s\t%s\t%d\t%s\n", info.Name, status, info.Keys, path)
	}
	return tw.Flush()
}
