package logging

import (
	"context"
	"log/slog"
)

// AuditEvent describes a change to stored graph configuration.
type AuditEvent struct {
	// Action is the operation, e.g. "graph_add", "graph_update", "graph_remove".
	Action string
	// Outcome is "success" or "failure".
	Outcome string
	// Target is the graph (section) name.
	Target string
	// Previous is the old name for renames.
	Previous string
	// Source identifies the surface that triggered the change (cli, http, mcp).
	Source string
	// Error carries the failure reason when Outcome is "failure".
	Error string
}

// Audit logs a configuration change at INFO level with an [AUDIT] prefix.
func Audit(event AuditEvent) {
	logger := currentLogger()
	if logger == nil || !logger.Enabled(context.Background(), slog.LevelInfo) {
		return
	}

	attrs := []slog.Attr{
		slog.String("subsystem", "Audit"),
		slog.String("action", event.Action),
		slog.String("outcome", event.Outcome),
		slog.String("target", event.Target),
	}
	if event.Previous != "" {
		attrs = append(attrs, slog.String("previous", event.Previous))
	}
	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}

	logger.LogAttrs(context.Background(), slog.LevelInfo, "[AUDIT] "+event.Action, attrs...)
}
