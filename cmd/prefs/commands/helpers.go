package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/prefs/internal/logging"
	"github.com/thoreinstein/prefs/pkg/resolver"
)

// printer writes CLI output, coloring it when w is a color-capable terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, color: logging.SupportsColor(w)}
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	boldColor   = color.New(color.Bold)
	sourceColor = color.New(color.FgGreen)
	dimColor    = color.New(color.FgHiBlack)
	warnColor   = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed, color.Bold)
)

func (p *printer) paint(c *color.Color, s string) string {
	if !p.color {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// sourceLabel renders where a value came from.
func (p *printer) sourceLabel(src resolver.SourceName) string {
	if src == resolver.SourceDefault {
		return p.paint(dimColor, "("+string(src)+")")
	}
	return p.paint(sourceColor, "("+string(src)+")")
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// formatValue renders a resolved value for text output. Strings print bare;
// everything else prints as compact JSON.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "(unset)"
	case *string:
		if x == nil {
			return "(unset)"
		}
		return *x
	case string:
		return x
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// sortedKeys returns m's keys in order.
func sortedKeys[V any](m map[resolver.Key]V) []resolver.Key {
	keys := make([]resolver.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// sortedDetailKeys returns the keys of a check's details in order.
func sortedDetailKeys(details map[string]any) []string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// kindList joins the supported kinds for help and error text.
func kindList() string {
	kinds := resolver.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
