// Package logger provides structured logging helpers built on log/slog.
//
// New builds a *slog.Logger from functional options, and the attribute helpers
// give common fields consistent keys across the codebase.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/utmcookie/core/logger"
//
//	log := logger.New(logger.WithDevelopment("utmdemo"))
//	log.Info("campaign hit",
//		logger.Component("utm"),
//		logger.UTM(utm.CanonicalKeys(), params.Map()),
//	)
//
//	// Production: JSON at info level
//	log = logger.New(logger.WithProduction("utmdemo"), logger.WithOutput(os.Stderr))
//
// # Nil-Safe Attributes
//
// Helpers that take optional data return an empty slog.Attr when there is
// nothing to log, and slog drops empty attributes:
//
//	log.Warn("recorder failed", logger.Error(err)) // err may be nil
package logger
