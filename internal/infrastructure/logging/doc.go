// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Components get a named child logger, so every line carries the part of the
// server that wrote it (desktop, ws, http, tracing).
//
// Example Usage:
//
//	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
//	logger.Info("Server starting", zap.String("port", "8000"))
//	wsLogger := logger.Component("ws")
//	wsLogger.Warn("Upgrade failed", zap.Error(err))
package logging
