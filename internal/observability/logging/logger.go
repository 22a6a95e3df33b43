// Package logging builds the structured logger sitch uses internally.
// Log output goes to stderr as JSON: stdout belongs to the report the
// user asked for. The default level is warn so normal runs stay clean;
// set LOG_LEVEL to debug to watch the fan-out work.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger creates a structured logger with JSON output on stderr. The
// log level is controlled by the LOG_LEVEL environment variable
// (debug, info, warn, error); unknown or unset values mean warn.
func NewLogger() *slog.Logger {
	level := LevelFromEnv()
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		// Add source code location when only warnings and errors show
		AddSource: level >= slog.LevelWarn,
	})
	return slog.New(handler)
}

// LevelFromEnv parses the LOG_LEVEL environment variable.
func LevelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
