// Package logging builds the two log sinks used by the service: a structured
// JSON logger (log/slog) for machines and a human-readable console stream
// (zerolog) for operators.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures rotation of the structured log file.
type FileOptions struct {
	// Path is the log file location. Empty means stdout.
	Path string
	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int
	// MaxAgeDays is the number of days rotated files are kept.
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
}

// Output returns the writer of the structured sink: stdout, or a rotating
// file when a path is configured. The returned closer must be closed on shutdown.
func Output(opts FileOptions) io.WriteCloser {
	if opts.Path == "" {
		return nopCloser{Writer: os.Stdout}
	}
	return &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
		LocalTime:  true,
	}
}

// ParseLevel maps a configured level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructured creates the JSON logger writing to w.
func NewStructured(level string, w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// NewConsole creates the console stream writing to w. Colors are only used
// in development.
func NewConsole(level, env string, w io.Writer) zerolog.Logger {
	zlevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || zlevel == zerolog.NoLevel {
		zlevel = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    env != "development",
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(writer).Level(zlevel).With().Timestamp().Logger()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
