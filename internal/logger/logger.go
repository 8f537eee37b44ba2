package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
)

const (
	logEnvKey     = "LOG_ENV"
	defaultLogEnv = "dev"
)

var logger *zap.Logger

func init() {
	env := os.Getenv(logEnvKey)
	if env == "" {
		env = defaultLogEnv
	}

	var err error
	logger, err = newLogger(env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
}

// newLogger builds the logger for env; an unknown env falls back to the dev logger with a warning.
func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case "dev":
		return zap.NewDevelopment()
	case "prod":
		return zap.NewProduction()
	case "test":
		return zap.NewNop(), nil
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	l.Warn("unknown log env, using dev logger", zap.String(logEnvKey, env))
	return l, nil
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	logger.Fatal(msg, fields...)
}

// Sync flushes buffered entries; call it before the process exits.
func Sync() {
	_ = logger.Sync()
}
