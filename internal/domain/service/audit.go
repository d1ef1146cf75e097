package service

import "context"

// AuditSink records administrative and queue actions for audit purposes.
// Recording is fire-and-forget: implementations must never surface failures
// to the caller.
type AuditSink interface {
	Record(ctx context.Context, action, category, entityType, entityID string, metadata map[string]any)
}
