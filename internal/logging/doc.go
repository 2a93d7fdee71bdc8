// Package logging provides structured logging for the area configuration
// generator.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the tool. Logging is silent by default so the
// interactive wizard and plain command output stay clean; set the
// AREACFG_LOG_LEVEL environment variable to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (generator selection, template assembly)
//   - Info: Normal operations (areas generated, files written)
//   - Warn: Non-fatal issues (skipped generators, fallback source entities)
//   - Error: Fatal issues (generation failures, write errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device generator ran",
//	    zap.String("area", "study"),
//	    zap.String("kind", "computer"),
//	    zap.Int("entities", 4),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogGeneration("Study", 12, []string{"computer", "tv"})
//	logging.LogOutput("/home/user/areas/study.yaml", 4096)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Output Format
//
// Logs are written to stderr in console format so they never mix with
// rendered YAML on stdout:
//
//	2025-11-25T10:30:45.123-0800  INFO  Configuration written
//	  path=/home/user/areas/study.yaml
//	  bytes=4096
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
