package common

import "context"

// SimulationLogger receives structured progress messages from long-running
// handlers. Entry points decide where the messages go; handlers just log.
type SimulationLogger interface {
	Log(level, message string, metadata map[string]interface{})
}

type contextKey int

const loggerKey contextKey = iota

// WithLogger attaches a logger to the context
func WithLogger(ctx context.Context, logger SimulationLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the context's logger, falling back to a no-op
// so handlers never need a nil check
func LoggerFromContext(ctx context.Context) SimulationLogger {
	if logger, ok := ctx.Value(loggerKey).(SimulationLogger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}
