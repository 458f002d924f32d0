package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "CONFSCHED_LOG_LEVEL"

// Initialize creates the global logger writing to path.
// If level is empty, it checks the CONFSCHED_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
//
// The terminal belongs to the TUI while it runs, so output always goes to a
// file. An empty path falls back to stderr, which is only useful for
// non-interactive commands.
func Initialize(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := parseLevel(level)
	if err != nil {
		return err
	}

	output := "stderr"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		output = path
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogAction logs an action taken off the dispatch queue.
func LogAction(action fmt.Stringer, mode fmt.Stringer) {
	Debug("Action dispatched",
		zap.Stringer("action", action),
		zap.Stringer("mode", mode),
	)
}

// LogBinding logs a key sequence that matched a binding.
func LogBinding(sequence []string, action fmt.Stringer, mode fmt.Stringer) {
	Info("Got action",
		zap.Strings("keys", sequence),
		zap.Stringer("action", action),
		zap.Stringer("mode", mode),
	)
}

// LogMutation logs a change applied to the schedule or settings.
func LogMutation(kind string, day, index int, err error) {
	fields := []zap.Field{
		zap.String("mutation", kind),
		zap.Int("day", day),
		zap.Int("index", index),
	}
	if err != nil {
		Warn("Mutation rejected", append(fields, zap.Error(err))...)
		return
	}
	Debug("Mutation applied", fields...)
}

// LogStore logs a persistence operation.
func LogStore(op, backend, name string, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("backend", backend),
		zap.String("name", name),
	}
	if err != nil {
		Error("Store operation failed", append(fields, zap.Error(err))...)
		return
	}
	Info("Store operation completed", fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
