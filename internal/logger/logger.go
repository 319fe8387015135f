// Package logger provides a simple wrapper around slog for structured logging.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Logger is the global logger instance.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Options configures the global logger.
type Options struct {
	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer
	// Level is one of debug, info, warn, error.
	Level string
	// Version is attached to every record in non-dev mode.
	Version string
	// Dev selects the human readable tint handler instead of JSON.
	Dev bool
	// NoColor disables ANSI colors in dev mode (for log files).
	NoColor bool
}

// Setup installs a new global logger built from opts and makes it the
// slog default.
func Setup(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var l *slog.Logger
	if opts.Dev {
		h := tint.NewHandler(out, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
			NoColor:    opts.NoColor,
		})
		l = slog.New(h).With("app", "bsd")
	} else {
		h := slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: level,
		})
		l = slog.New(h).With(
			"app", "bsd",
			"version", opts.Version,
		)
	}

	Logger = l
	slog.SetDefault(l)
	return nil
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
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
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// OpenFile opens path for appending log lines, creating parent directories.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// log emits a record attributed to the caller of the package helpers.
func log(level slog.Level, msg string, args ...any) {
	ctx := context.Background()
	if !Logger.Enabled(ctx, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // skip Callers, log and the exported helper
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = Logger.Handler().Handle(ctx, r)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	log(slog.LevelError, msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	log(slog.LevelWarn, msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	log(slog.LevelDebug, msg, args...)
}
