// Package logger provides a structured logging facility based on Zap.
//
// Loggers are plain values: commands build one from configuration and pass it
// to the components that emit diagnostics. Nothing in the module reads a
// process-wide logger.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error (anything else is ErrInvalidLogLevel)
//   - Format: json or console
//
// Logs go to stderr so command output on stdout stays machine readable.
//
// # Usage
//
//	log, err := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Verification started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
