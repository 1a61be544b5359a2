package common

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLogLevel maps a textual level ("debug", "info", "warn", "error") to a slog.Level.
//
// Parameters:
//   - level: the level name, case-insensitive
//
// Returns:
//   - slog.Level: the parsed level
//   - error: error if the name is unknown
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(level)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// NewLogger builds the diagnostic logger used by every component.
// Format "json" selects a JSON handler; anything else selects the text handler.
//
// Parameters:
//   - w: destination for log records
//   - level: minimum level to emit
//   - format: "text" or "json"
//
// Returns:
//   - *slog.Logger: the configured logger
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
