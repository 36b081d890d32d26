package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler implements slog.Handler for TTY-optimized text output.
// It provides colorized output when the writer supports it and masks
// credential-looking attribute values.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string

	// Colors
	timeColor  *color.Color
	traceColor *color.Color
	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
	keyColor   *color.Color
}

// NewHandler creates a new TTY-optimized text handler.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}

	if SupportsColor(out) {
		h.timeColor = color.New(color.FgHiBlack)
		h.traceColor = color.New(color.FgHiBlack)
		h.debugColor = color.New(color.FgMagenta)
		h.infoColor = color.New(color.FgGreen)
		h.warnColor = color.New(color.FgYellow)
		h.errorColor = color.New(color.FgRed, color.Bold)
		h.keyColor = color.New(color.FgCyan)
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes the record as: time, level, message, attributes.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		t := r.Time.Format(time.Kitchen)
		if h.timeColor != nil {
			t = h.timeColor.Sprint(t)
		}
		b.WriteString(t)
		b.WriteByte(' ')
	}

	fmt.Fprintf(&b, "%-5s ", h.levelString(r.Level))
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&b, a, "")
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, a, h.prefix)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) levelString(level slog.Level) string {
	s := level.String()
	if level < slog.LevelDebug && level >= LevelTrace {
		s = "TRACE"
	}
	if h.timeColor == nil {
		return s
	}
	switch {
	case level >= slog.LevelError:
		return h.errorColor.Sprint(s)
	case level >= slog.LevelWarn:
		return h.warnColor.Sprint(s)
	case level >= slog.LevelInfo:
		return h.infoColor.Sprint(s)
	case level >= slog.LevelDebug:
		return h.debugColor.Sprint(s)
	default:
		return h.traceColor.Sprint(s)
	}
}

func (h *Handler) writeAttr(b *strings.Builder, a slog.Attr, prefix string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, ga, groupPrefix)
		}
		return
	}

	key := prefix + a.Key
	if h.keyColor != nil {
		key = h.keyColor.Sprint(key)
	}

	value := a.Value.Any()
	switch {
	case ShouldMask(a.Key):
		value = MaskValue(fmt.Sprint(value))
	case a.Value.Kind() == slog.KindString:
		s := a.Value.String()
		if ContainsTokenPrefix(s) {
			value = MaskValue(s)
		} else if strings.Contains(s, "://") {
			value = MaskURL(s)
		}
	}

	fmt.Fprintf(b, " %s=%v", key, value)
}

// WithAttrs returns a new Handler with the given attributes.
// The attributes are qualified by any open groups at this point.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newH.attrs, h.attrs)
	for _, a := range attrs {
		newH.attrs = append(newH.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &newH
}

// WithGroup returns a new Handler with the given group name.
// Groups are rendered as dotted key prefixes.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.prefix = h.prefix + name + "."
	return &newH
}
