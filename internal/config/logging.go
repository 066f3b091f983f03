package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// noopClose is the cleanup returned when no log file is open.
func noopClose() error { return nil }

// SetupLogger builds the process logger: human-readable text on stderr and,
// when logFile is set, JSON appended to that file via a fanout. The MCP
// binary must keep stdout clean for the protocol, so nothing ever logs
// there. The returned func closes the log file.
func SetupLogger(logFile string, level slog.Level) (*slog.Logger, func() error) {
	stderr := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	if logFile == "" {
		return slog.New(stderr), noopClose
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.Error("failed to open log file, using stderr only", "error", err, "file", logFile)
		return slog.New(stderr), noopClose
	}

	fanout := slogmulti.Fanout(
		stderr,
		slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}),
	)
	return slog.New(fanout), f.Close
}

// SetupLoggerWithWriters is the injectable variant used by tests.
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}),
	))
}
