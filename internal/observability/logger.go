package observability

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	slog   *slog.Logger
	closer io.Closer
}

// Options mirror the observability section of the config.
type Options struct {
	LogPath    string
	LogLevel   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger writes JSON records to a rotating file when LogPath is set,
// otherwise to stderr.
func NewLogger(opts Options) *Logger {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer
	)
	if opts.LogPath != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.LogPath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		out = rotator
		closer = rotator
	}

	return NewLoggerTo(out, opts.LogLevel, closer)
}

// NewLoggerTo builds a logger on an arbitrary writer.
func NewLoggerTo(w io.Writer, level string, closer io.Closer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{slog: slog.New(handler), closer: closer}
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return NewLoggerTo(io.Discard, "error", nil)
}

func parseLevel(level string) slog.Level {
	switch level {
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

func (l *Logger) Debug(msg string, fields ...any) {
	l.slog.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...any) {
	l.slog.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...any) {
	l.slog.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...any) {
	l.slog.Error(msg, fields...)
}

// Close flushes the rotating file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
