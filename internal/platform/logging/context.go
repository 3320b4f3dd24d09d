package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext extracts the logger from context.
// Returns the default logger if no logger is found or ctx is nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// WithContext stores a logger in the context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithRunID tags every record logged through ctx with the crawl's run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	logger := FromContext(ctx).With(slog.String("run_id", runID))
	return WithContext(ctx, logger)
}

// WithPage tags every record logged through ctx with the page being processed.
func WithPage(ctx context.Context, pageNum int, url string) context.Context {
	logger := FromContext(ctx).With(
		slog.Int("page", pageNum),
		slog.String("url", url),
	)
	return WithContext(ctx, logger)
}

// SetDefault sets the default logger used when no logger is in context.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
