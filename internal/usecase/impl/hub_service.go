package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/constants"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/repository"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/service"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
)

type hubService struct {
	txManager repository.TransactionManager
	hubRepo   repository.HubRepository
	audit     service.AuditSink
	logger    *slog.Logger
}

// NewHubService creates the hub registry use case.
func NewHubService(
	txManager repository.TransactionManager,
	hubRepo repository.HubRepository,
	audit service.AuditSink,
	logger *slog.Logger,
) usecase.HubUsecase {
	return &hubService{
		txManager: txManager,
		hubRepo:   hubRepo,
		audit:     audit,
		logger:    logger,
	}
}

func (s *hubService) CreateHub(ctx context.Context, actor entity.Actor, input *usecase.CreateHubInput) (*entity.Hub, error) {
	if !service.Authorize(actor.Role, service.ActionManageHubs) {
		return nil, domainerrors.ErrPermissionDenied
	}
	if input == nil {
		return nil, domainerrors.ErrValidation.WithDetails("missing hub fields")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrValidation.WithDetails("hub name must not be empty")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}
	if input.RadiusMeters <= 0 {
		return nil, domainerrors.ErrValidation.WithDetails(
			fmt.Sprintf("radius must be positive, got %.2f", input.RadiusMeters))
	}

	now := time.Now()
	hub := &entity.Hub{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		RadiusMeters: input.RadiusMeters,
		IsActive:     input.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.hubRepo.CreateHub(ctx, hub); err != nil {
		return nil, errors.Wrap(err, "failed to create hub")
	}

	s.audit.Record(ctx, "hub_created", constants.AuditCategoryHub, "hub", hub.ID.String(),
		map[string]any{"name": hub.Name, "admin_id": actor.ProfessionalID.String()})

	return hub, nil
}

func (s *hubService) UpdateHub(ctx context.Context, actor entity.Actor, hubID uuid.UUID, input *usecase.UpdateHubInput) (*entity.Hub, error) {
	if !service.Authorize(actor.Role, service.ActionManageHubs) {
		return nil, domainerrors.ErrPermissionDenied
	}
	if input == nil {
		return nil, domainerrors.ErrValidation.WithDetails("missing hub fields")
	}

	hub, err := s.hubRepo.FindHubByID(ctx, hubID)
	if err != nil {
		if errors.Is(err, repository.ErrHubNotFound) {
			return nil, domainerrors.ErrHubNotFound
		}

		return nil, errors.Wrap(err, "failed to find hub")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.ErrValidation.WithDetails("hub name must not be empty")
		}
		hub.Name = name
	}
	if input.Address != nil {
		hub.Address = strings.TrimSpace(*input.Address)
	}
	if input.Latitude != nil {
		hub.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		hub.Longitude = *input.Longitude
	}
	if err := validateCoordinates(hub.Latitude, hub.Longitude); err != nil {
		return nil, err
	}
	if input.RadiusMeters != nil {
		if *input.RadiusMeters <= 0 {
			return nil, domainerrors.ErrValidation.WithDetails(
				fmt.Sprintf("radius must be positive, got %.2f", *input.RadiusMeters))
		}
		hub.RadiusMeters = *input.RadiusMeters
	}
	if input.IsActive != nil {
		hub.IsActive = *input.IsActive
	}
	hub.UpdatedAt = time.Now()

	if err := s.hubRepo.UpdateHub(ctx, hub); err != nil {
		return nil, errors.Wrap(err, "failed to update hub")
	}

	s.audit.Record(ctx, "hub_updated", constants.AuditCategoryHub, "hub", hub.ID.String(),
		map[string]any{"admin_id": actor.ProfessionalID.String()})

	return hub, nil
}

// DeleteHub refuses to delete a hub while any professional still holds a
// live entry in its queue.
func (s *hubService) DeleteHub(ctx context.Context, actor entity.Actor, hubID uuid.UUID) error {
	if !service.Authorize(actor.Role, service.ActionManageHubs) {
		return domainerrors.ErrPermissionDenied
	}

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		hubRepo := factory.NewHubRepository()
		if _, err := hubRepo.FindHubByID(ctx, hubID); err != nil {
			if errors.Is(err, repository.ErrHubNotFound) {
				return domainerrors.ErrHubNotFound
			}

			return errors.Wrap(err, "failed to find hub")
		}

		count, err := factory.NewQueueRepository().CountEntriesByHub(ctx, hubID)
		if err != nil {
			return errors.Wrap(err, "failed to count queue entries")
		}
		if count > 0 {
			return domainerrors.ErrHubHasActiveEntries.WithDetails(
				fmt.Sprintf("live_entries=%d", count))
		}

		if err := hubRepo.DeleteHub(ctx, hubID); err != nil {
			return errors.Wrap(err, "failed to delete hub")
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, "hub_deleted", constants.AuditCategoryHub, "hub", hubID.String(),
		map[string]any{"admin_id": actor.ProfessionalID.String()})

	return nil
}

func (s *hubService) GetHub(ctx context.Context, hubID uuid.UUID) (*entity.Hub, error) {
	hub, err := s.hubRepo.FindHubByID(ctx, hubID)
	if err != nil {
		if errors.Is(err, repository.ErrHubNotFound) {
			return nil, domainerrors.ErrHubNotFound
		}

		return nil, errors.Wrap(err, "failed to find hub")
	}

	return hub, nil
}

func (s *hubService) ListHubs(ctx context.Context, onlyActive bool) ([]*entity.Hub, error) {
	hubs, err := s.hubRepo.ListHubs(ctx, onlyActive)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list hubs")
	}

	return hubs, nil
}
