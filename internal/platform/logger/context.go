package logger

import (
	"context"
	"log/slog"
)

// loggerContextKey is the context key under which a request-scoped logger
// is stored. An unexported type avoids collisions with other packages.
type loggerContextKey struct{}

// WithLogger returns a copy of ctx carrying the given logger. Middleware
// uses this to attach a request-scoped logger (e.g., with a trace ID).
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext retrieves the logger from the context, falling back to the
// process default logger when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault retrieves the logger from the context, falling
// back to the provided default when none is set. Stores and services call
// this at the top of each operation so their log lines carry any
// request-scoped attributes.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
