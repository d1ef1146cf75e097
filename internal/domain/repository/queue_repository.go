package repository

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/errors"

	"github.com/google/uuid"
)

// ErrEntryNotFound is returned when no queue entry matches.
var ErrEntryNotFound = errors.New("queue entry not found")

// QueueRepository persists QueueEntry records. Structural mutations
// (creates, updates, deletes and position shifts) must run on a
// transaction-bound instance after LockHubQueue so that one hub's queue is
// mutated by a single writer at a time.
type QueueRepository interface {
	// CreateEntry persists a new queue entry.
	CreateEntry(ctx context.Context, entry *entity.QueueEntry) error

	// UpdateEntry saves changes to an existing queue entry.
	UpdateEntry(ctx context.Context, entry *entity.QueueEntry) error

	// DeleteEntry removes a queue entry.
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	// FindEntryByProfessional retrieves the professional's single live entry,
	// of either status, if any.
	FindEntryByProfessional(ctx context.Context, professionalID uuid.UUID) (*entity.QueueEntry, error)

	// FindWaitingByHub retrieves the hub's waiting entries ordered by position.
	FindWaitingByHub(ctx context.Context, hubID uuid.UUID) ([]*entity.QueueEntry, error)

	// FindEnRouteByHub retrieves the hub's en-route entries ordered by dispatch time.
	FindEnRouteByHub(ctx context.Context, hubID uuid.UUID) ([]*entity.QueueEntry, error)

	// CountEntriesByHub counts live entries of either status for a hub.
	CountEntriesByHub(ctx context.Context, hubID uuid.UUID) (int64, error)

	// MaxWaitingPosition returns the highest waiting position for a hub,
	// or 0 when no entry is waiting.
	MaxWaitingPosition(ctx context.Context, hubID uuid.UUID) (int, error)

	// MinWaitingPosition returns the lowest waiting position for a hub,
	// or 0 when no entry is waiting.
	MinWaitingPosition(ctx context.Context, hubID uuid.UUID) (int, error)

	// LockHubQueue takes row-level locks on the hub's queue entries for the
	// duration of the surrounding transaction, serializing structural
	// mutations per hub. Independent hubs proceed in parallel.
	LockHubQueue(ctx context.Context, hubID uuid.UUID) error

	// ShiftPositionsDown decrements by one every waiting position greater
	// than abovePosition, closing the gap left by a departing slot.
	ShiftPositionsDown(ctx context.Context, hubID uuid.UUID, abovePosition int) error

	// ShiftPositionsUp increments by one every waiting position greater than
	// or equal to fromPosition, opening a slot for a priority re-insertion.
	ShiftPositionsUp(ctx context.Context, hubID uuid.UUID, fromPosition int) error
}
