package utils

import (
	"context"
	"errors"
	"log/slog"
)

// TeeLogHandler is an slog.Handler that forwards records to every wrapped
// handler, used to log to the console and the log file at once.
type TeeLogHandler struct {
	handlers []slog.Handler
}

func NewTeeLogHandler(handlers ...slog.Handler) *TeeLogHandler {
	return &TeeLogHandler{handlers: handlers}
}

func (h *TeeLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *TeeLogHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (h *TeeLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return NewTeeLogHandler(handlers...)
}

func (h *TeeLogHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return NewTeeLogHandler(handlers...)
}
