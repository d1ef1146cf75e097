package entity

import (
	"time"

	"github.com/google/uuid"
)

// QueueStatus is the lifecycle state of a queue entry.
type QueueStatus string

const (
	// QueueStatusWaiting means the professional holds a numbered slot in the hub's line.
	QueueStatusWaiting QueueStatus = "waiting"
	// QueueStatusEnRoute means the professional has been dispatched and holds no slot.
	QueueStatusEnRoute QueueStatus = "en_route"
)

// PositionReasonMovedToBack marks an entry whose slot was administratively
// moved to the end of the line.
const PositionReasonMovedToBack = "movido_ultimo"

// QueueEntry is a professional's live state within a hub's dispatch queue.
//
// Invariants maintained by the queue service:
//   - a professional has at most one entry, of either status, at any time;
//   - within a hub the waiting positions are exactly the contiguous range
//     1..N with N = number of waiting entries;
//   - Position is nil iff Status is en_route;
//   - SingleRide and OriginalPosition are only meaningful while en_route and
//     are cleared on return.
type QueueEntry struct {
	ID               uuid.UUID   `json:"id"`
	HubID            uuid.UUID   `json:"hub_id"`
	ProfessionalID   uuid.UUID   `json:"professional_id"`
	DisplayName      string      `json:"display_name"`
	Status           QueueStatus `json:"status"`
	Position         *int        `json:"position,omitempty"`
	EnteredAt        time.Time   `json:"entered_at"`
	DispatchedAt     *time.Time  `json:"dispatched_at,omitempty"`
	ReturnedAt       *time.Time  `json:"returned_at,omitempty"`
	CheckinLatitude  float64     `json:"checkin_latitude"`
	CheckinLongitude float64     `json:"checkin_longitude"`
	SingleRide       bool        `json:"single_ride"`
	OriginalPosition *int        `json:"original_position,omitempty"`
	PositionReason   *string     `json:"position_reason,omitempty"`
}

// IsWaiting reports whether the entry holds a slot in the line.
func (e *QueueEntry) IsWaiting() bool {
	return e.Status == QueueStatusWaiting
}

// IsEnRoute reports whether the entry is currently out on a route.
func (e *QueueEntry) IsEnRoute() bool {
	return e.Status == QueueStatusEnRoute
}
