// Package observability builds the slog logger stack shared by the orbitx
// commands: a text handler for the console plus an optional JSON-lines
// file, fanned out so every record reaches every sink.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures NewLogger.
type Options struct {
	// Level is the minimum level: debug, info, warn, error. Anything
	// else means info.
	Level string

	// File, when non-empty, receives every record as a JSON line. The
	// file is appended to and its parent directory is created.
	File string

	// Console overrides the console sink. Default: os.Stderr, keeping
	// stdout free for command output.
	Console io.Writer
}

// NewLogger builds a logger from opts. The close function releases the log
// file; it is a no-op when no file is configured. Callers should defer it
// around their run function.
func NewLogger(opts Options) (*slog.Logger, func() error, error) {
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	level := ParseLevel(opts.Level)

	handlers := []slog.Handler{
		slog.NewTextHandler(opts.Console, &slog.HandlerOptions{Level: level}),
	}
	closer := func() error { return nil }

	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("observability: log dir: %w", err)
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("observability: open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closer = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// ParseLevel maps a level string onto its slog level. Unknown strings fall
// back to info rather than erroring: a typo in LOG_LEVEL should never stop
// a command from starting.
func ParseLevel(s string) slog.Level {
	switch s {
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
