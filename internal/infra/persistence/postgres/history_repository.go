package postgres

import (
	"context"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/repository"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// historyRepository implements the domain's HistoryRepository interface.
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository is the constructor for historyRepository.
func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

// AppendEvent persists a new history event.
func (repo *historyRepository) AppendEvent(ctx context.Context, event *entity.HistoryEvent) error {
	eventM := fromHistoryEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append history event")
	}

	event.ID = eventM.ID
	event.CreatedAt = eventM.CreatedAt

	return nil
}

// FindEventsByHub retrieves events for a hub within [from, to), newest first.
func (repo *historyRepository) FindEventsByHub(ctx context.Context, hubID uuid.UUID, from, to time.Time) ([]*entity.HistoryEvent, error) {
	var eventModels []*model.HistoryEventModel
	err := repo.db.WithContext(ctx).
		Where("hub_id = ? AND created_at >= ? AND created_at < ?", hubID, from, to).
		Order("created_at DESC").
		Find(&eventModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find history events")
	}

	events := make([]*entity.HistoryEvent, 0, len(eventModels))
	for _, eventM := range eventModels {
		events = append(events, toHistoryEventDomain(eventM))
	}

	return events, nil
}

func fromHistoryEventDomain(event *entity.HistoryEvent) *model.HistoryEventModel {
	return &model.HistoryEventModel{
		ID:             event.ID,
		HubID:          event.HubID,
		HubName:        event.HubName,
		ProfessionalID: event.ProfessionalID,
		DisplayName:    event.DisplayName,
		Action:         string(event.Action),
		WaitMinutes:    event.WaitMinutes,
		EnRouteMinutes: event.EnRouteMinutes,
		Note:           event.Note,
		AdminID:        event.AdminID,
		CreatedAt:      event.CreatedAt,
	}
}

func toHistoryEventDomain(eventM *model.HistoryEventModel) *entity.HistoryEvent {
	return &entity.HistoryEvent{
		ID:             eventM.ID,
		HubID:          eventM.HubID,
		HubName:        eventM.HubName,
		ProfessionalID: eventM.ProfessionalID,
		DisplayName:    eventM.DisplayName,
		Action:         entity.HistoryAction(eventM.Action),
		WaitMinutes:    eventM.WaitMinutes,
		EnRouteMinutes: eventM.EnRouteMinutes,
		Note:           eventM.Note,
		AdminID:        eventM.AdminID,
		CreatedAt:      eventM.CreatedAt,
	}
}
