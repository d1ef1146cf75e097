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

// bindingRepository implements the domain's BindingRepository interface.
type bindingRepository struct {
	db *gorm.DB
}

// NewBindingRepository is the constructor for bindingRepository.
func NewBindingRepository(db *gorm.DB) repository.BindingRepository {
	return &bindingRepository{db: db}
}

// CreateBinding persists a new binding.
func (repo *bindingRepository) CreateBinding(ctx context.Context, binding *entity.Binding) error {
	bindingM := fromBindingDomain(binding)

	if err := repo.db.WithContext(ctx).Create(bindingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAlreadyBound
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrHubNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create binding")
	}

	binding.ID = bindingM.ID
	binding.CreatedAt = bindingM.CreatedAt
	binding.UpdatedAt = bindingM.UpdatedAt

	return nil
}

// UpdateBinding saves changes to an existing binding.
func (repo *bindingRepository) UpdateBinding(ctx context.Context, binding *entity.Binding) error {
	bindingM := fromBindingDomain(binding)

	if err := repo.db.WithContext(ctx).Save(bindingM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update binding")
	}

	binding.UpdatedAt = bindingM.UpdatedAt

	return nil
}

// FindActiveBindingByProfessional retrieves the professional's single active binding.
func (repo *bindingRepository) FindActiveBindingByProfessional(ctx context.Context, professionalID uuid.UUID) (*entity.Binding, error) {
	var bindingM model.BindingModel
	err := repo.db.WithContext(ctx).
		Where("professional_id = ? AND is_active = ?", professionalID, true).
		First(&bindingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBindingNotFound
		}

		return nil, errors.Wrap(err, "failed to find binding by professional")
	}

	return toBindingDomain(&bindingM), nil
}

// FindActiveBindingsByHub retrieves all active bindings for a hub.
func (repo *bindingRepository) FindActiveBindingsByHub(ctx context.Context, hubID uuid.UUID) ([]*entity.Binding, error) {
	var bindingModels []*model.BindingModel
	err := repo.db.WithContext(ctx).
		Where("hub_id = ? AND is_active = ?", hubID, true).
		Order("created_at ASC").
		Find(&bindingModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find bindings by hub")
	}

	bindings := make([]*entity.Binding, 0, len(bindingModels))
	for _, bindingM := range bindingModels {
		bindings = append(bindings, toBindingDomain(bindingM))
	}

	return bindings, nil
}

// DeactivateBinding marks a binding inactive.
func (repo *bindingRepository) DeactivateBinding(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BindingModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to deactivate binding")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBindingNotFound
	}

	return nil
}

func fromBindingDomain(binding *entity.Binding) *model.BindingModel {
	return &model.BindingModel{
		ID:             binding.ID,
		HubID:          binding.HubID,
		ProfessionalID: binding.ProfessionalID,
		DisplayName:    binding.DisplayName,
		IsActive:       binding.IsActive,
		CreatedAt:      binding.CreatedAt,
		UpdatedAt:      binding.UpdatedAt,
	}
}

func toBindingDomain(bindingM *model.BindingModel) *entity.Binding {
	return &entity.Binding{
		ID:             bindingM.ID,
		HubID:          bindingM.HubID,
		ProfessionalID: bindingM.ProfessionalID,
		DisplayName:    bindingM.DisplayName,
		IsActive:       bindingM.IsActive,
		CreatedAt:      bindingM.CreatedAt,
		UpdatedAt:      bindingM.UpdatedAt,
	}
}
