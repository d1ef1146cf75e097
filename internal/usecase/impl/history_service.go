package impl

import (
	"context"
	"sort"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/repository"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
)

type historyService struct {
	historyRepo repository.HistoryRepository
	hubRepo     repository.HubRepository
}

// NewHistoryService creates the transition ledger read side.
func NewHistoryService(
	historyRepo repository.HistoryRepository,
	hubRepo repository.HubRepository,
) usecase.HistoryUsecase {
	return &historyService{historyRepo: historyRepo, hubRepo: hubRepo}
}

func (s *historyService) History(ctx context.Context, hubID uuid.UUID, from, to time.Time) ([]*entity.HistoryEvent, error) {
	if !to.After(from) {
		return nil, domainerrors.ErrValidation.WithDetails("history range end must be after start")
	}

	if _, err := s.hubRepo.FindHubByID(ctx, hubID); err != nil {
		if errors.Is(err, repository.ErrHubNotFound) {
			return nil, domainerrors.ErrHubNotFound
		}

		return nil, errors.Wrap(err, "failed to find hub")
	}

	events, err := s.historyRepo.FindEventsByHub(ctx, hubID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list history events")
	}

	return events, nil
}

// Stats aggregates one hub-day of ledger events. The day runs from the local
// midnight of the given date.
func (s *historyService) Stats(ctx context.Context, hubID uuid.UUID, date time.Time) (*usecase.DayStats, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	events, err := s.History(ctx, hubID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	stats := &usecase.DayStats{
		HubID:   hubID,
		Date:    dayStart,
		Ranking: []usecase.ProfessionalStanding{},
	}

	var (
		waitSum      int
		waitCount    int
		enRouteSum   int
		enRouteCount int
	)
	type tally struct {
		displayName string
		dispatches  int
		waitSum     int
		waitCount   int
	}
	perProfessional := map[uuid.UUID]*tally{}

	for _, event := range events {
		switch event.Action {
		case entity.HistoryActionEntrance:
			stats.Entrances++
			stats.HourlyEntrances[event.CreatedAt.In(dayStart.Location()).Hour()]++
		case entity.HistoryActionReturn:
			stats.Returns++
		case entity.HistoryActionPriorityReturn:
			stats.Returns++
		case entity.HistoryActionDispatched, entity.HistoryActionDispatchedOnce:
			stats.Dispatches++
			if event.Action == entity.HistoryActionDispatchedOnce {
				stats.PriorityDispatches++
			}

			row := perProfessional[event.ProfessionalID]
			if row == nil {
				row = &tally{displayName: event.DisplayName}
				perProfessional[event.ProfessionalID] = row
			}
			row.dispatches++
			if event.WaitMinutes != nil {
				row.waitSum += *event.WaitMinutes
				row.waitCount++
			}
		case entity.HistoryActionRemoved, entity.HistoryActionVoluntaryExit:
			stats.Removals++
		}

		if event.WaitMinutes != nil {
			waitSum += *event.WaitMinutes
			waitCount++
		}
		if event.EnRouteMinutes != nil {
			enRouteSum += *event.EnRouteMinutes
			enRouteCount++
		}
	}

	if waitCount > 0 {
		stats.AverageWaitMins = float64(waitSum) / float64(waitCount)
	}
	if enRouteCount > 0 {
		stats.AverageEnRouteMins = float64(enRouteSum) / float64(enRouteCount)
	}

	for id, row := range perProfessional {
		standing := usecase.ProfessionalStanding{
			ProfessionalID: id,
			DisplayName:    row.displayName,
			Dispatches:     row.dispatches,
		}
		if row.waitCount > 0 {
			standing.AverageWaitMins = float64(row.waitSum) / float64(row.waitCount)
		}
		stats.Ranking = append(stats.Ranking, standing)
	}
	sort.Slice(stats.Ranking, func(i, j int) bool {
		if stats.Ranking[i].Dispatches != stats.Ranking[j].Dispatches {
			return stats.Ranking[i].Dispatches > stats.Ranking[j].Dispatches
		}

		return stats.Ranking[i].DisplayName < stats.Ranking[j].DisplayName
	})

	return stats, nil
}
