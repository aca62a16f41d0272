package common

import "context"

// Logger is the sink handlers write to. Levels are the upper-case names
// DEBUG, INFO, WARN and ERROR; metadata may be nil.
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

type loggerKey struct{}

// discard swallows everything. Handlers called outside the CLI get it.
var discard Logger = discardLogger{}

// WithLogger returns a child of ctx carrying logger
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger attached by WithLogger, or one that
// drops every entry.
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return logger
	}
	return discard
}

type discardLogger struct{}

func (discardLogger) Log(string, string, map[string]interface{}) {}
