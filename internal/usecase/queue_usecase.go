package usecase

import (
	"context"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

	"github.com/google/uuid"
)

// EnterInput carries the professional's check-in coordinates.
type EnterInput struct {
	Latitude  float64
	Longitude float64
}

// EnterOutcome distinguishes a fresh entrance from the two return variants.
type EnterOutcome string

const (
	EnterOutcomeEntrance       EnterOutcome = "entrada"
	EnterOutcomeReturn         EnterOutcome = "retorno"
	EnterOutcomePriorityReturn EnterOutcome = "retorno_prioridade"
)

// EnterResult reports the entry state after a check-in.
type EnterResult struct {
	Outcome  EnterOutcome       `json:"outcome"`
	Position int                `json:"position"`
	Entry    *entity.QueueEntry `json:"entry"`
}

// OverdueAlert flags an en-route professional past the overdue threshold.
type OverdueAlert struct {
	Entry          *entity.QueueEntry `json:"entry"`
	EnRouteFor     time.Duration      `json:"en_route_for"`
	ThresholdAgeAt time.Time          `json:"threshold_age_at"` // when the entry crossed the threshold
}

// QueueListing is the admin view of a hub's queue.
type QueueListing struct {
	Waiting []*entity.QueueEntry `json:"waiting"`
	EnRoute []*entity.QueueEntry `json:"en_route"`
	Overdue []OverdueAlert       `json:"overdue"`
}

// Neighbor is a nearby waiting professional shown in the position view.
type Neighbor struct {
	Position    int    `json:"position"`
	DisplayName string `json:"display_name"`
}

// PositionView is the professional's own view of the queue.
type PositionView struct {
	Status       entity.QueueStatus `json:"status"`
	Position     *int               `json:"position,omitempty"`
	TotalWaiting int                `json:"total_waiting"`
	Ahead        []Neighbor         `json:"ahead"`
	Behind       []Neighbor         `json:"behind"`
	WaitingSince *time.Time         `json:"waiting_since,omitempty"`
	ElapsedWait  time.Duration      `json:"elapsed_wait"`
}

// BindingStatus reports the professional's hub assignment and live entry.
type BindingStatus struct {
	Binding *entity.Binding    `json:"binding"`
	Hub     *entity.Hub        `json:"hub"`
	Entry   *entity.QueueEntry `json:"entry,omitempty"`
}

// QueueUsecase is the dispatch queue state machine. Structural mutations for
// one hub are serialized against each other; reads observe consistent
// snapshots and run concurrently.
type QueueUsecase interface {
	// Enter admits the acting professional into their hub's line after a
	// geofence check. When the professional is currently en route the call
	// is a return and re-inserts at the tail or, for single-ride dispatches,
	// at the original slot.
	Enter(ctx context.Context, actor entity.Actor, input *EnterInput) (*EnterResult, error)

	// Exit removes the acting professional's own entry.
	Exit(ctx context.Context, actor entity.Actor) error

	// Dispatch sends a waiting professional out on a route. Admin only.
	Dispatch(ctx context.Context, actor entity.Actor, hubID, professionalID uuid.UUID) (*entity.QueueEntry, error)

	// DispatchPriority is Dispatch with guaranteed priority re-entry at the
	// professional's current slot. Admin only.
	DispatchPriority(ctx context.Context, actor entity.Actor, hubID, professionalID uuid.UUID) (*entity.QueueEntry, error)

	// MoveToBack sends a waiting professional to the end of the line.
	// A professional already at the tail keeps their position. Admin only.
	MoveToBack(ctx context.Context, actor entity.Actor, hubID, professionalID uuid.UUID) (*entity.QueueEntry, error)

	// Remove deletes a professional's entry with an administrative note. Admin only.
	Remove(ctx context.Context, actor entity.Actor, hubID, professionalID uuid.UUID, note string) error

	// ListQueue returns the hub's waiting line, en-route professionals and
	// overdue alerts. Admin only.
	ListQueue(ctx context.Context, actor entity.Actor, hubID uuid.UUID) (*QueueListing, error)

	// WhichHub reports the acting professional's binding and live entry.
	WhichHub(ctx context.Context, actor entity.Actor) (*BindingStatus, error)

	// MyPosition reports the acting professional's slot, its neighbors and
	// the elapsed wait.
	MyPosition(ctx context.Context, actor entity.Actor) (*PositionView, error)
}
