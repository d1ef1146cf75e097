package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind identifies the dispatch event a notification announces.
type NotificationKind string

const (
	// NotificationKindDispatched announces a regular route dispatch.
	NotificationKindDispatched NotificationKind = "roteiro_despachado"
	// NotificationKindSingleRide announces a single-stop run with priority re-entry.
	NotificationKindSingleRide NotificationKind = "corrida_unica"
)

// NotificationPayload carries the structured context of a dispatch
// notification. It is an explicit tagged structure, parsed and validated at
// the boundary, never an opaque blob.
type NotificationPayload struct {
	HubID            uuid.UUID `json:"hub_id"`
	HubName          string    `json:"hub_name"`
	PreviousPosition int       `json:"previous_position"`
	SingleRide       bool      `json:"single_ride"`
	DispatchedAt     time.Time `json:"dispatched_at"`
}

// Notification is a professional's mailbox slot. At most one live
// notification exists per professional; a newer push overwrites the previous
// one whether or not it was read.
type Notification struct {
	ProfessionalID uuid.UUID           `json:"professional_id"`
	Kind           NotificationKind    `json:"kind"`
	Message        string              `json:"message"`
	Payload        NotificationPayload `json:"payload"`
	Read           bool                `json:"read"`
	CreatedAt      time.Time           `json:"created_at"`
}
