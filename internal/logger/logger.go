package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type implLogger struct {
	slog *slog.Logger
}

// New creates a Logger writing to stdout at the given level.
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a Logger writing to w at the given level.
// Unknown levels default to info.
func NewWithWriter(w io.Writer, level string) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &implLogger{slog: slog.New(handler)}
}

// NewTee creates a Logger that writes to stdout at the given level and
// duplicates everything at debug level into a second writer. Used to keep a
// full debug log file in the temp directory while the console stays quiet.
func NewTee(file io.Writer, level string) Logger {
	console := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)})
	debug := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &implLogger{slog: slog.New(&teeHandler{handlers: []slog.Handler{console, debug}})}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.slog.DebugContext(ctx, fmt.Sprintf(msg, args...))
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.slog.InfoContext(ctx, fmt.Sprintf(msg, args...))
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.slog.WarnContext(ctx, fmt.Sprintf(msg, args...))
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.slog.ErrorContext(ctx, fmt.Sprintf(msg, args...))
}

// teeHandler fans every record out to all handlers that accept its level.
type teeHandler struct {
	handlers []slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &teeHandler{handlers: next}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithGroup(name)
	}
	return &teeHandler{handlers: next}
}
