// Package logger wraps logrus behind a small leveled logging interface.
package logger

import (
	"github.com/sirupsen/logrus"
)

// Ctx is the logging context to attach to a message.
type Ctx map[string]any

// Logger is the main logging interface.
type Logger interface {
	Debug(msg string, ctx ...Ctx)
	Info(msg string, ctx ...Ctx)
	Warn(msg string, ctx ...Ctx)
	Error(msg string, ctx ...Ctx)
	AddContext(ctx Ctx) Logger
}

// Log contains the logger used by all the logging functions.
var Log Logger = newWrapper(logrus.StandardLogger())

// InitLogger initializes the global logger at the requested verbosity.
// By default only warnings and errors are shown.
func InitLogger(verbose bool, debug bool) {
	logrus.SetLevel(logrus.WarnLevel)
	if verbose {
		logrus.SetLevel(logrus.InfoLevel)
	}

	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	Log = newWrapper(logrus.StandardLogger())
}

type targetLogger interface {
	WithFields(fields logrus.Fields) *logrus.Entry
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

type logWrapper struct {
	target targetLogger
}

func newWrapper(target targetLogger) Logger {
	return &logWrapper{target}
}

// ctxLogger returns a logger target with all provided ctx applied.
func (lw *logWrapper) ctxLogger(ctx ...Ctx) targetLogger {
	logger := lw.target
	for _, c := range ctx {
		logger = logger.WithFields(logrus.Fields(c))
	}

	return logger
}

// Debug logs a debug level message.
func (lw *logWrapper) Debug(msg string, ctx ...Ctx) {
	lw.ctxLogger(ctx...).Debug(msg)
}

// Info logs an info level message.
func (lw *logWrapper) Info(msg string, ctx ...Ctx) {
	lw.ctxLogger(ctx...).Info(msg)
}

// Warn logs a warning level message.
func (lw *logWrapper) Warn(msg string, ctx ...Ctx) {
	lw.ctxLogger(ctx...).Warn(msg)
}

// Error logs an error level message.
func (lw *logWrapper) Error(msg string, ctx ...Ctx) {
	lw.ctxLogger(ctx...).Error(msg)
}

// AddContext returns a sub-logger with the provided context added.
func (lw *logWrapper) AddContext(ctx Ctx) Logger {
	return &logWrapper{lw.ctxLogger(ctx)}
}

// Debug logs a debug level message on the global logger.
func Debug(msg string, ctx ...Ctx) {
	Log.Debug(msg, ctx...)
}

// Info logs an info level message on the global logger.
func Info(msg string, ctx ...Ctx) {
	Log.Info(msg, ctx...)
}

// Warn logs a warning level message on the global logger.
func Warn(msg string, ctx ...Ctx) {
	Log.Warn(msg, ctx...)
}

// Error logs an error level message on the global logger.
func Error(msg string, ctx ...Ctx) {
	Log.Error(msg, ctx...)
}
