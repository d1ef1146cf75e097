package repository

import (
	"context"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

	"github.com/google/uuid"
)

// HistoryRepository persists the append-only transition ledger.
type HistoryRepository interface {
	// AppendEvent persists a new history event. Events are never mutated.
	AppendEvent(ctx context.Context, event *entity.HistoryEvent) error

	// FindEventsByHub retrieves events for a hub within [from, to), newest first.
	FindEventsByHub(ctx context.Context, hubID uuid.UUID, from, to time.Time) ([]*entity.HistoryEvent, error)
}
