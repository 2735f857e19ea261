package logging

import (
	"github.com/samber/oops"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors the code and context are added as attributes, for standard
// errors only the error string is logged.
func (l *Logger) LogError(msg string, err error, args ...any) {
	attrs := append([]any{}, args...)

	if oopsErr, ok := oops.AsOops(err); ok {
		attrs = append(attrs, "error", oopsErr.Error(), "code", oopsErr.Code())
		if domain := oopsErr.Domain(); domain != "" {
			attrs = append(attrs, "domain", domain)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		l.Error(msg, attrs...)
		return
	}

	attrs = append(attrs, "error", err)
	l.Error(msg, attrs...)
}
