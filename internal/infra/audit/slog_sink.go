// Package audit records administrative actions to the structured log.
package audit

import (
	"context"
	"log/slog"

	deliverycontext "github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/context"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/service"
)

type slogSink struct {
	logger *slog.Logger
}

// NewSlogSink returns an AuditSink that emits one structured log record per
// action. Downstream log shipping turns these into the durable audit trail.
func NewSlogSink(logger *slog.Logger) service.AuditSink {
	return &slogSink{logger: logger.With(slog.String("component", "audit"))}
}

func (s *slogSink) Record(ctx context.Context, action, category, entityType, entityID string, metadata map[string]any) {
	attrs := []any{
		slog.String("action", action),
		slog.String("category", category),
		slog.String("entity_type", entityType),
		slog.String("entity_id", entityID),
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if len(metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", metadata))
	}

	s.logger.InfoContext(ctx, "audit", attrs...)
}
