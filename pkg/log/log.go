// Package log provides the process-wide logger for sqmerge.
// Diagnostic output goes through here; everything the user is meant to
// read and act on (the message preview, the accept/edit/quit prompt)
// is written to stdout directly by the acceptance loop.
package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.SugaredLogger
	globalMutex  sync.RWMutex
)

// Config holds logger configuration.
type Config struct {
	// Verbose enables debug-level output.
	Verbose bool
}

// Init initializes the global logger. Called once from the command
// entry point before any pipeline stage runs.
func Init(cfg Config) {
	level := zapcore.WarnLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalLogger = newLogger(level).Sugar()
}

// Get returns the global logger, initializing a default one if Init
// has not been called yet.
func Get() *zap.SugaredLogger {
	globalMutex.RLock()
	logger := globalLogger
	globalMutex.RUnlock()

	if logger != nil {
		return logger
	}

	created := newLogger(zapcore.WarnLevel).Sugar()

	globalMutex.Lock()
	defer globalMutex.Unlock()
	if globalLogger == nil {
		globalLogger = created
	}
	return globalLogger
}

func newLogger(level zapcore.Level) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// Diagnostics go to stderr so they never interleave with the
	// message preview on stdout.
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stderr), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// Debugf logs a formatted debug message.
func Debugf(template string, args ...interface{}) {
	Get().Debugf(template, args...)
}

// Debugw logs a debug message with structured fields.
func Debugw(msg string, args ...interface{}) {
	Get().Debugw(msg, args...)
}

// Warnf logs a formatted warning message.
func Warnf(template string, args ...interface{}) {
	Get().Warnf(template, args...)
}

// Errorf logs a formatted error message.
func Errorf(template string, args ...interface{}) {
	Get().Errorf(template, args...)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Get().Sync()
}
