package logging

import (
	"log/slog"
	"os"
)

// Logger is the application logger. It embeds *slog.Logger so the usual
// Info/Warn/Error/Log methods are available directly.
type Logger struct {
	*slog.Logger
}

// NewLogger builds a logger writing to stderr. Development mode uses a human
// readable text handler at debug level, everything else JSON at info level.
func NewLogger(isDevelopment bool) *Logger {
	var handler slog.Handler
	if isDevelopment {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// New wraps an existing slog logger.
func New(l *slog.Logger) *Logger {
	return &Logger{Logger: l}
}

// WithFields returns a child logger that always includes the given fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{Logger: l.With(args...)}
}
