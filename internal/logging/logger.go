// Package logging configures structured logging with log/slog.
//
// It integrates with chi's RequestID middleware so log entries emitted while
// serving a request carry the request ID, and provides run-scoped loggers for
// import runs.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup configures the global slog logger.
//
// Level: "debug", "info", "warn", "error" (default: "info").
// Format: "text" or "json" (default: "text"). Use "json" in production.
func Setup(level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromContext returns a logger enriched with the chi request ID when the
// context carries one.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}

	return logger
}

// ForRun returns a logger carrying import-run context. All entries emitted
// during one run share the same run_id/import_type/file fields.
func ForRun(ctx context.Context, runID int64, importType, fileName string) *slog.Logger {
	return FromContext(ctx).With(
		"run_id", runID,
		"import_type", importType,
		"file", fileName,
	)
}
