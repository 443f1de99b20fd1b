// Package logger provides a singleton Zap logger with context-based scoping.
//
// # Design Decisions
//
//   - Singleton: one global instance initialized with Init().
//   - Context scoping: a run can carry its own scoped logger with extra fields
//     (provider, run_id, ...) without building a new core.
//   - Environments: "dev" logs to a colored console, "prod" logs JSON.
//   - Levels: debug, info, warn, error.
//
// # Usage
//
// Initialization (once, in main):
//
//	logger.Init(logger.Config{
//	    Env:   os.Getenv("APP_ENV"),
//	    Level: os.Getenv("LOG_LEVEL"),
//	})
//	defer logger.Sync()
//
// Inside the authenticators (with context):
//
//	log := logger.From(ctx)
//	log.Info("account confirmed", logger.Provider("facebook"))
//
// Without a context (singleton fallback):
//
//	logger.L().Info("starting")
package logger
