package usecase

import (
	"context"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfessionalStanding is one row of the per-professional dispatch ranking.
type ProfessionalStanding struct {
	ProfessionalID  uuid.UUID `json:"professional_id"`
	DisplayName     string    `json:"display_name"`
	Dispatches      int       `json:"dispatches"`
	AverageWaitMins float64   `json:"average_wait_minutes"`
}

// DayStats aggregates one hub-day of queue history.
type DayStats struct {
	HubID              uuid.UUID              `json:"hub_id"`
	Date               time.Time              `json:"date"`
	Entrances          int                    `json:"entrances"`
	Dispatches         int                    `json:"dispatches"`
	PriorityDispatches int                    `json:"priority_dispatches"`
	Returns            int                    `json:"returns"`
	Removals           int                    `json:"removals"`
	AverageWaitMins    float64                `json:"average_wait_minutes"`
	AverageEnRouteMins float64                `json:"average_en_route_minutes"`
	Ranking            []ProfessionalStanding `json:"ranking"`
	HourlyEntrances    [24]int                `json:"hourly_entrances"`
}

// HistoryUsecase reads the transition ledger. Appends happen as side effects
// of queue mutations and are not part of this interface.
type HistoryUsecase interface {
	History(ctx context.Context, hubID uuid.UUID, from, to time.Time) ([]*entity.HistoryEvent, error)
	Stats(ctx context.Context, hubID uuid.UUID, date time.Time) (*DayStats, error)
}
