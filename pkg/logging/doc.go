// Package logging provides subsystem-tagged structured logging for
// grafanagraphs, built on the standard log/slog package.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Store", "Loaded %d sections from %s", n, path)
//	logging.Debug("Config", "Using backend %s", backend)
//	logging.Warn("Watch", "Reload skipped: %v", err)
//	logging.Error("Server", err, "Failed to save graph %s", name)
//
// Every entry carries a "subsystem" attribute. Errors passed to Error are
// attached as an "error" attribute rather than formatted into the message.
//
// # Output formats
//
// Init selects between a text handler (default) and a JSON handler:
//
//	logging.Init(logging.LevelDebug, logging.FormatJSON, os.Stderr)
//
// # Audit logging
//
// Changes to stored graphs are recorded with Audit:
//
//	logging.Audit(logging.AuditEvent{
//	    Action:  "graph_update",
//	    Outcome: "success",
//	    Target:  "svc2",
//	    Previous: "svc1",
//	    Source:  "http",
//	})
//
// Audit events are logged at INFO level with an [AUDIT] prefix for easy
// filtering by log aggregation systems.
//
// Before Init is called only warnings and errors are written, to stderr.
package logging
