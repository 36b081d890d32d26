package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler dispatches records to multiple handlers, e.g. the terminal
// handler and the --log-file JSON handler.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler creates a new MultiHandler that dispatches to all provided handlers.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Enabled reports whether any underlying handler is enabled for level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle dispatches the record to every enabled handler and joins their errors.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(sh slog.Handler) slog.Handler { return sh.WithAttrs(attrs) })
}

// WithGroup implements slog.Handler.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(sh slog.Handler) slog.Handler { return sh.WithGroup(name) })
}

func (h *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = fn(handler)
	}
	return NewMultiHandler(handlers...)
}
