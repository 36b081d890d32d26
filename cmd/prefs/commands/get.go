package commands

import (
	"encoding/json"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prefs/internal/errors"
	"github.com/thoreinstein/prefs/pkg/resolver"
)

var (
	getType    string
	getDefault string
	getJSON    bool
)

func init() {
	getCmd.Flags().StringVarP(&getType, "type", "t", "",
		"value type: "+kindList()+" (default: the catalogued type)")
	getCmd.Flags().StringVarP(&getDefault, "default", "d", "",
		"default as JSON, e.g. true, 30, [\"a\"]; strings may be bare")
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Resolve a preference value",
	Long: `Resolve a key across the shared, local and document sources and print
the winning value with the source it came from.

Catalogued keys (see: prefs keys) use their declared type and default.
Other keys need --type. A source whose value has a different type is
skipped, so a lower-priority source or the default may win.`,
	Example: `  prefs get AutoLogoutTimeInterval
  prefs get BrandingName --json
  prefs get SupportEmail --type string --default help@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// getOutput is a resolution in JSON output format.
type getOutput struct {
	Key    resolver.Key        `json:"key"`
	Kind   resolver.Kind       `json:"kind"`
	Value  any                 `json:"value"`
	Source resolver.SourceName `json:"source"`
	Found  bool                `json:"found"`
}

func runGet(c *cobra.Command, args []string) error {
	r, err := newResolver(c)
	if err != nil {
		return err
	}
	out, err := resolveKey(r, resolver.Key(args[0]), getType, getDefault)
	if err != nil {
		return err
	}
	return writeGet(c.OutOrStdout(), out, getJSON)
}

func writeGet(w io.Writer, out *getOutput, asJSON bool) error {
	if asJSON {
		return writeJSON(w, out)
	}
	p := newPrinter(w)
	p.printf("%s = %s  %s\n", p.paint(boldColor, string(out.Key)), formatValue(out.Value), p.sourceLabel(out.Source))
	return nil
}

// resolveKey resolves key as kindName, or as its catalogued kind when
// kindName is empty. defText overrides the catalogued default.
func resolveKey(r *resolver.Resolver, key resolver.Key, kindName, defText string) (*getOutput, error) {
	kind, def, err := keySpec(key, kindName, defText)
	if err != nil {
		return nil, err
	}

	out := &getOutput{Key: key, Kind: kind}
	switch kind {
	case resolver.KindBool:
		d, _ := def.(bool)
		fill(out, r.ResolveBool(key, d))
	case resolver.KindNumber:
		d, _ := def.(float64)
		fill(out, r.ResolveNumber(key, d))
	case resolver.KindString:
		d, _ := def.(string)
		fill(out, r.ResolveString(key, d))
	case resolver.KindOptionalString:
		d, _ := def.(*string)
		fill(out, r.ResolveOptionalString(key, d))
	case resolver.KindStrings:
		d, _ := def.([]string)
		fill(out, r.ResolveStrings(key, d))
	case resolver.KindRecords:
		d, _ := def.([]resolver.Record)
		fill(out, r.ResolveRecords(key, d))
	}
	return out, nil
}

func fill[T any](out *getOutput, res resolver.Resolution[T]) {
	out.Value = res.Value
	out.Source = res.Source
	out.Found = res.Found
}

// keySpec works out the kind and default to resolve key with.
func keySpec(key resolver.Key, kindName, defText string) (resolver.Kind, any, error) {
	info, catalogued := resolver.LookupKey(key)

	kind := info.Kind
	if kindName != "" {
		kind = resolver.Kind(kindName)
		if !slices.Contains(resolver.Kinds(), kind) {
			return "", nil, errors.NewUserError(
				errors.Wrapf(errors.ErrUnknownKind, "%q", kindName),
				"valid types: "+kindList())
		}
	} else if !catalogued {
		return "", nil, errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "key %q is not catalogued", key),
			"pass --type, or list known keys with: prefs keys")
	}

	var def any
	if catalogued && kind == info.Kind {
		def = info.Default
	}
	if defText != "" {
		d, err := parseDefault(kind, defText)
		if err != nil {
			return "", nil, err
		}
		def = d
	}
	return kind, def, nil
}

// parseDefault decodes a --default value. String kinds accept bare text.
func parseDefault(kind resolver.Kind, text string) (any, error) {
	raw := json.RawMessage(text)
	if (kind == resolver.KindString || kind == resolver.KindOptionalString) && !strings.HasPrefix(text, `"`) {
		raw, _ = json.Marshal(text)
	}
	v, err := resolver.Decode(kind, raw)
	if err != nil {
		return nil, errors.NewUserError(
			errors.Wrapf(errors.ErrInvalidDefault, "%s is not %s", text, kind),
			`defaults are JSON, e.g. true, 30, "text", ["a", "b"]`)
	}
	return v, nil
}
