package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QueueEvent announces a queue transition to external subscribers
// (dashboards, client pollers, downstream analytics).
type QueueEvent struct {
	EventID        string     `json:"event_id"`
	HubID          uuid.UUID  `json:"hub_id"`
	ProfessionalID uuid.UUID  `json:"professional_id"`
	Action         string     `json:"action"`
	Position       *int       `json:"position,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
	RequestID      string     `json:"request_id,omitempty"`
}

// EventPublisher publishes queue events. It is injected into the components
// that announce transitions; the core never reaches into process-wide
// broadcast state.
type EventPublisher interface {
	// PublishQueueEvent publishes a single queue transition event.
	PublishQueueEvent(ctx context.Context, event *QueueEvent) error

	// Close releases publisher resources.
	Close() error
}
