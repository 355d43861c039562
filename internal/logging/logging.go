package logging

import (
	"log/slog"
	"os"
	"strings"

	"RegRadar/internal/domain"
)

// New creates a console slog.Logger with provided level string.
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

// EventSink routes pipeline events to the logger, replacing print-style
// reporting so runs stay auditable without capturing stdout.
func EventSink(logger *slog.Logger) domain.EventSink {
	return func(e domain.Event) {
		if logger == nil {
			return
		}

		attrs := []any{"source", e.Source, "id", e.RecordID}
		if e.Title != "" {
			attrs = append(attrs, "title", e.Title)
		}

		switch e.Kind {
		case domain.EventStored:
			logger.Info("record stored", attrs...)
		case domain.EventSkippedStale:
			logger.Debug("record skipped, no update at source", attrs...)
		case domain.EventDroppedNoID:
			logger.Warn("record dropped, missing id", attrs...)
		case domain.EventSourceSkipped:
			logger.Info("source skipped, credential not set", "source", e.Source)
		case domain.EventFetchFailed:
			logger.Warn("fetch failed", "source", e.Source, "error", e.Err)
		}
	}
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
