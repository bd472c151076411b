// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a human friendly console
// encoding for interactive runs and a JSON encoding for scheduled jobs whose output
// is shipped to a log collector.
//
// # Run Awareness
//
// Every ingestion run gets a run id. The WithRun helper attaches it, together with
// the dataset name, so all progress lines, batch outcomes and the final summary of
// one run can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRun(log, runID, "customers")
//	log.Info("Parsed export", zap.Int("lines", n))
package logger
