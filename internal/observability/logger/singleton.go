package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init initializes the logger singleton with the given configuration.
// Idempotent: only the first call has any effect. Call it early in main.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L returns the singleton logger.
// If Init was never called, a default (dev, info) logger is created.
func L() *zap.Logger {
	if instance == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// Named returns a logger named after a component.
// The name shows up in every entry to identify the origin.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// With returns a logger with additional persistent fields
// (e.g. provider and run id on an authenticator).
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync flushes any buffered entries. Call with defer in main.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
