package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Options configures the process logger.
type Options struct {
	Level  slog.Level
	File   string // optional; when set, logs go to stderr and the file
	Format string // "json" (default) or "text"
}

// Setup configures slog to write JSONL to stderr and, optionally, a log file.
// Returns a logger and a cleanup function to close the file handle.
func Setup(opts Options, stderr io.Writer) (*slog.Logger, func(), error) {
	cleanup := func() {}
	w := stderr

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "creating log dir")
		}

		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening log file")
		}

		w = io.MultiWriter(stderr, f)
		cleanup = func() {
			_ = f.Close()
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		cleanup()
		return nil, nil, errors.WithHint(errors.Newf("unknown log format %q", opts.Format), "use json or text")
	}

	return slog.New(handler), cleanup, nil
}

// ParseLevel converts a level name (debug, info, warn, error) to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.WithHint(errors.Newf("unknown log level %q", s), "use debug, info, warn or error")
}
