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
)

// hubRepository implements the domain's HubRepository interface.
type hubRepository struct {
	db *gorm.DB
}

// NewHubRepository is the constructor for hubRepository.
func NewHubRepository(db *gorm.DB) repository.HubRepository {
	return &hubRepository{db: db}
}

// CreateHub persists a new hub.
func (repo *hubRepository) CreateHub(ctx context.Context, hub *entity.Hub) error {
	hubM := fromHubDomain(hub)

	if err := repo.db.WithContext(ctx).Create(hubM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("hub already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create hub")
	}

	hub.ID = hubM.ID
	hub.CreatedAt = hubM.CreatedAt
	hub.UpdatedAt = hubM.UpdatedAt

	return nil
}

// UpdateHub saves changes to an existing hub.
func (repo *hubRepository) UpdateHub(ctx context.Context, hub *entity.Hub) error {
	hubM := fromHubDomain(hub)

	if err := repo.db.WithContext(ctx).Save(hubM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update hub")
	}

	hub.UpdatedAt = hubM.UpdatedAt

	return nil
}

// DeleteHub soft-deletes a hub.
func (repo *hubRepository) DeleteHub(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.HubModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete hub")
	}
	if result.RowsAffected == 0 {
		return repository.ErrHubNotFound
	}

	return nil
}

// FindHubByID retrieves a hub by its unique ID.
func (repo *hubRepository) FindHubByID(ctx context.Context, id uuid.UUID) (*entity.Hub, error) {
	var hubM model.HubModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&hubM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrHubNotFound
		}

		return nil, errors.Wrap(err, "failed to find hub by ID")
	}

	return toHubDomain(&hubM), nil
}

// ListHubs retrieves all hubs, optionally restricted to active ones.
func (repo *hubRepository) ListHubs(ctx context.Context, onlyActive bool) ([]*entity.Hub, error) {
	query := repo.db.WithContext(ctx).Order("name ASC")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var hubModels []*model.HubModel
	if err := query.Find(&hubModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list hubs")
	}

	hubs := make([]*entity.Hub, 0, len(hubModels))
	for _, hubM := range hubModels {
		hubs = append(hubs, toHubDomain(hubM))
	}

	return hubs, nil
}

func fromHubDomain(hub *entity.Hub) *model.HubModel {
	return &model.HubModel{
		ID:           hub.ID,
		Name:         hub.Name,
		Address:      hub.Address,
		Latitude:     hub.Latitude,
		Longitude:    hub.Longitude,
		RadiusMeters: hub.RadiusMeters,
		IsActive:     hub.IsActive,
		CreatedAt:    hub.CreatedAt,
		UpdatedAt:    hub.UpdatedAt,
	}
}

func toHubDomain(hubM *model.HubModel) *entity.Hub {
	return &entity.Hub{
		ID:           hubM.ID,
		Name:         hubM.Name,
		Address:      hubM.Address,
		Latitude:     hubM.Latitude,
		Longitude:    hubM.Longitude,
		RadiusMeters: hubM.RadiusMeters,
		IsActive:     hubM.IsActive,
		CreatedAt:    hubM.CreatedAt,
		UpdatedAt:    hubM.UpdatedAt,
	}
}
