package logger

import corelogger "github.com/kilianp07/simfactory/core/logger"

// Alias the core interface for convenience.
// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.Nop

// New returns a Logger for the given component, using the settings passed
// to Configure. The console format is also selected when APP_ENV=dev.
func New(component string) Logger {
	return NewZerologLogger(component)
}
