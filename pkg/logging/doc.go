// Package logging configures the process-wide structured logger.
//
// Logs are diagnostics, not report output: they are written to stderr as JSON
// so they never interleave with the text report on stdout.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: detailed diagnostic information with source location
//   - INFO: general informational messages (default)
//   - WARN/WARNING: degraded sections and skipped entities
//   - ERROR: failures that abort the run
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("sysreport", version, "info")
//	    slog.Info("report started", "format", "text")
//	}
//
// The LOG_LEVEL environment variable is honored by SetDefaultStructuredLogger:
//
//	LOG_LEVEL=debug sysreport
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "section degraded",
//	    "module": "sysreport",
//	    "version": "v1.0.0",
//	    "section": "GPU Information"
//	}
package logging
