package postgres

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/repository"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// queueRepository implements the domain's QueueRepository interface.
type queueRepository struct {
	db *gorm.DB
}

// NewQueueRepository is the constructor for queueRepository.
func NewQueueRepository(db *gorm.DB) repository.QueueRepository {
	return &queueRepository{db: db}
}

// CreateEntry persists a new queue entry.
func (repo *queueRepository) CreateEntry(ctx context.Context, entry *entity.QueueEntry) error {
	entryM := fromQueueEntryDomain(entry)

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAlreadyInQueue
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create queue entry")
	}

	entry.ID = entryM.ID

	return nil
}

// UpdateEntry saves changes to an existing queue entry. It writes every
// column so that cleared pointer fields (position, single-ride state) are
// persisted as NULL rather than skipped as zero values.
func (repo *queueRepository) UpdateEntry(ctx context.Context, entry *entity.QueueEntry) error {
	entryM := fromQueueEntryDomain(entry)

	err := repo.db.WithContext(ctx).
		Model(&model.QueueEntryModel{}).
		Where("id = ?", entry.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(entryM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update queue entry")
	}

	return nil
}

// DeleteEntry removes a queue entry.
func (repo *queueRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.QueueEntryModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete queue entry")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEntryNotFound
	}

	return nil
}

// FindEntryByProfessional retrieves the professional's single live entry.
func (repo *queueRepository) FindEntryByProfessional(ctx context.Context, professionalID uuid.UUID) (*entity.QueueEntry, error) {
	var entryM model.QueueEntryModel
	err := repo.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		First(&entryM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEntryNotFound
		}

		return nil, errors.Wrap(err, "failed to find queue entry by professional")
	}

	return toQueueEntryDomain(&entryM), nil
}

// FindWaitingByHub retrieves the hub's waiting entries ordered by position.
func (repo *queueRepository) FindWaitingByHub(ctx context.Context, hubID uuid.UUID) ([]*entity.QueueEntry, error) {
	var entryModels []*model.QueueEntryModel
	err := repo.db.WithContext(ctx).
		Where("hub_id = ? AND status = ?", hubID, string(entity.QueueStatusWaiting)).
		Order("position ASC").
		Find(&entryModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find waiting entries")
	}

	return toQueueEntryDomainSlice(entryModels), nil
}

// FindEnRouteByHub retrieves the hub's en-route entries, oldest dispatch first.
func (repo *queueRepository) FindEnRouteByHub(ctx context.Context, hubID uuid.UUID) ([]*entity.QueueEntry, error) {
	var entryModels []*model.QueueEntryModel
	err := repo.db.WithContext(ctx).
		Where("hub_id = ? AND status = ?", hubID, string(entity.QueueStatusEnRoute)).
		Order("dispatched_at ASC").
		Find(&entryModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find en-route entries")
	}

	return toQueueEntryDomainSlice(entryModels), nil
}

// CountEntriesByHub counts live entries of either status for a hub.
func (repo *queueRepository) CountEntriesByHub(ctx context.Context, hubID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.QueueEntryModel{}).
		Where("hub_id = ?", hubID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count queue entries")
	}

	return count, nil
}

// MaxWaitingPosition returns the highest waiting position, or 0 when empty.
func (repo *queueRepository) MaxWaitingPosition(ctx context.Context, hubID uuid.UUID) (int, error) {
	return repo.boundaryPosition(ctx, hubID, "MAX(position)")
}

// MinWaitingPosition returns the lowest waiting position, or 0 when empty.
func (repo *queueRepository) MinWaitingPosition(ctx context.Context, hubID uuid.UUID) (int, error) {
	return repo.boundaryPosition(ctx, hubID, "MIN(position)")
}

func (repo *queueRepository) boundaryPosition(ctx context.Context, hubID uuid.UUID, aggregate string) (int, error) {
	var position *int
	err := repo.db.WithContext(ctx).
		Model(&model.QueueEntryModel{}).
		Where("hub_id = ? AND status = ?", hubID, string(entity.QueueStatusWaiting)).
		Select(aggregate).
		Scan(&position).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to read boundary position")
	}
	if position == nil {
		return 0, nil
	}

	return *position, nil
}

// LockHubQueue takes SELECT ... FOR UPDATE row locks on the hub's live
// entries for the rest of the surrounding transaction. Concurrent structural
// mutations on the same hub serialize here; other hubs are unaffected.
func (repo *queueRepository) LockHubQueue(ctx context.Context, hubID uuid.UUID) error {
	var ids []uuid.UUID
	err := repo.db.WithContext(ctx).
		Model(&model.QueueEntryModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hub_id = ?", hubID).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return errors.Wrap(err, "failed to lock hub queue")
	}

	return nil
}

// ShiftPositionsDown closes the gap left by a departing slot with a single
// UPDATE over the hub's waiting rows.
func (repo *queueRepository) ShiftPositionsDown(ctx context.Context, hubID uuid.UUID, abovePosition int) error {
	err := repo.db.WithContext(ctx).
		Model(&model.QueueEntryModel{}).
		Where("hub_id = ? AND status = ? AND position > ?",
			hubID, string(entity.QueueStatusWaiting), abovePosition).
		Update("position", gorm.Expr("position - 1")).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to shift positions down")
	}

	return nil
}

// ShiftPositionsUp opens a slot for a priority re-insertion with a single
// UPDATE over the hub's waiting rows.
func (repo *queueRepository) ShiftPositionsUp(ctx context.Context, hubID uuid.UUID, fromPosition int) error {
	err := repo.db.WithContext(ctx).
		Model(&model.QueueEntryModel{}).
		Where("hub_id = ? AND status = ? AND position >= ?",
			hubID, string(entity.QueueStatusWaiting), fromPosition).
		Update("position", gorm.Expr("position + 1")).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to shift positions up")
	}

	return nil
}

func fromQueueEntryDomain(entry *entity.QueueEntry) *model.QueueEntryModel {
	return &model.QueueEntryModel{
		ID:               entry.ID,
		HubID:            entry.HubID,
		ProfessionalID:   entry.ProfessionalID,
		DisplayName:      entry.DisplayName,
		Status:           string(entry.Status),
		Position:         entry.Position,
		EnteredAt:        entry.EnteredAt,
		DispatchedAt:     entry.DispatchedAt,
		ReturnedAt:       entry.ReturnedAt,
		CheckinLatitude:  entry.CheckinLatitude,
		CheckinLongitude: entry.CheckinLongitude,
		SingleRide:       entry.SingleRide,
		OriginalPosition: entry.OriginalPosition,
		PositionReason:   entry.PositionReason,
	}
}

func toQueueEntryDomain(entryM *model.QueueEntryModel) *entity.QueueEntry {
	return &entity.QueueEntry{
		ID:               entryM.ID,
		HubID:            entryM.HubID,
		ProfessionalID:   entryM.ProfessionalID,
		DisplayName:      entryM.DisplayName,
		Status:           entity.QueueStatus(entryM.Status),
		Position:         entryM.Position,
		EnteredAt:        entryM.EnteredAt,
		DispatchedAt:     entryM.DispatchedAt,
		ReturnedAt:       entryM.ReturnedAt,
		CheckinLatitude:  entryM.CheckinLatitude,
		CheckinLongitude: entryM.CheckinLongitude,
		SingleRide:       entryM.SingleRide,
		OriginalPosition: entryM.OriginalPosition,
		PositionReason:   entryM.PositionReason,
	}
}

func toQueueEntryDomainSlice(entryModels []*model.QueueEntryModel) []*entity.QueueEntry {
	entries := make([]*entity.QueueEntry, 0, len(entryModels))
	for _, entryM := range entryModels {
		entries = append(entries, toQueueEntryDomain(entryM))
	}

	return entries
}
