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

type bindingService struct {
	txManager   repository.TransactionManager
	bindingRepo repository.BindingRepository
	historyRepo repository.HistoryRepository
	audit       service.AuditSink
	logger      *slog.Logger
}

// NewBindingService creates the professional-to-hub assignment use case.
func NewBindingService(
	txManager repository.TransactionManager,
	bindingRepo repository.BindingRepository,
	historyRepo repository.HistoryRepository,
	audit service.AuditSink,
	logger *slog.Logger,
) usecase.BindingUsecase {
	return &bindingService{
		txManager:   txManager,
		bindingRepo: bindingRepo,
		historyRepo: historyRepo,
		audit:       audit,
		logger:      logger,
	}
}

func (s *bindingService) Bind(ctx context.Context, actor entity.Actor, input *usecase.BindInput) (*entity.Binding, error) {
	if !service.Authorize(actor.Role, service.ActionManageBindings) {
		return nil, domainerrors.ErrPermissionDenied
	}
	if input == nil {
		return nil, domainerrors.ErrValidation.WithDetails("missing binding fields")
	}

	var binding *entity.Binding

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		var err error
		binding, err = s.bind(ctx, factory, input)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "professional_bound", constants.AuditCategoryBinding,
		"binding", binding.ID.String(), map[string]any{
			"hub_id":          input.HubID.String(),
			"professional_id": input.ProfessionalID.String(),
			"admin_id":        actor.ProfessionalID.String(),
		})

	return binding, nil
}

// bind runs inside a transaction. Binding to the hub the professional is
// already assigned to is idempotent; binding to a different hub fails and
// requires an explicit Rebind.
func (s *bindingService) bind(ctx context.Context, factory repository.RepositoryFactory, input *usecase.BindInput) (*entity.Binding, error) {
	bindingRepo := factory.NewBindingRepository()

	existing, err := bindingRepo.FindActiveBindingByProfessional(ctx, input.ProfessionalID)
	if err != nil && !errors.Is(err, repository.ErrBindingNotFound) {
		return nil, errors.Wrap(err, "failed to find binding")
	}
	if existing != nil {
		if existing.HubID == input.HubID {
			return existing, nil
		}

		return nil, domainerrors.ErrAlreadyBound.WithDetails(
			fmt.Sprintf("bound_hub_id=%s", existing.HubID))
	}

	if _, err := factory.NewHubRepository().FindHubByID(ctx, input.HubID); err != nil {
		if errors.Is(err, repository.ErrHubNotFound) {
			return nil, domainerrors.ErrHubNotFound
		}

		return nil, errors.Wrap(err, "failed to find hub")
	}

	now := time.Now()
	binding := &entity.Binding{
		ID:             uuid.New(),
		HubID:          input.HubID,
		ProfessionalID: input.ProfessionalID,
		DisplayName:    strings.TrimSpace(input.DisplayName),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := bindingRepo.CreateBinding(ctx, binding); err != nil {
		return nil, errors.Wrap(err, "failed to create binding")
	}

	return binding, nil
}

func (s *bindingService) Unbind(ctx context.Context, actor entity.Actor, professionalID uuid.UUID) error {
	if !service.Authorize(actor.Role, service.ActionManageBindings) {
		return domainerrors.ErrPermissionDenied
	}

	removed, err := s.unbind(ctx, professionalID)
	if err != nil {
		return err
	}

	if removed != nil {
		s.appendUnbindHistory(ctx, removed)
	}
	s.audit.Record(ctx, "professional_unbound", constants.AuditCategoryBinding,
		"binding", professionalID.String(), map[string]any{
			"professional_id": professionalID.String(),
			"admin_id":        actor.ProfessionalID.String(),
		})

	return nil
}

// unbind deactivates the binding and deletes any live queue entry, closing
// the position gap the entry leaves behind. It returns the deleted entry, if
// there was one, for the history ledger.
func (s *bindingService) unbind(ctx context.Context, professionalID uuid.UUID) (*entity.QueueEntry, error) {
	var removed *entity.QueueEntry

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		bindingRepo := factory.NewBindingRepository()
		binding, err := bindingRepo.FindActiveBindingByProfessional(ctx, professionalID)
		if err != nil {
			if errors.Is(err, repository.ErrBindingNotFound) {
				return domainerrors.ErrNotBound
			}

			return errors.Wrap(err, "failed to find binding")
		}

		queueRepo := factory.NewQueueRepository()
		entry, err := queueRepo.FindEntryByProfessional(ctx, professionalID)
		switch {
		case errors.Is(err, repository.ErrEntryNotFound):
			// Nothing in the queue; just release the binding.
		case err != nil:
			return errors.Wrap(err, "failed to find queue entry")
		default:
			if err := queueRepo.LockHubQueue(ctx, entry.HubID); err != nil {
				return errors.Wrap(err, "failed to lock hub queue")
			}
			entry, err = queueRepo.FindEntryByProfessional(ctx, professionalID)
			if err != nil && !errors.Is(err, repository.ErrEntryNotFound) {
				return errors.Wrap(err, "failed to find queue entry")
			}
			if entry != nil {
				if err := queueRepo.DeleteEntry(ctx, entry.ID); err != nil {
					return errors.Wrap(err, "failed to delete queue entry")
				}
				if entry.IsWaiting() && entry.Position != nil {
					if err := queueRepo.ShiftPositionsDown(ctx, entry.HubID, *entry.Position); err != nil {
						return errors.Wrap(err, "failed to close queue gap")
					}
				}
				removed = entry
			}
		}

		if err := bindingRepo.DeactivateBinding(ctx, binding.ID); err != nil {
			return errors.Wrap(err, "failed to deactivate binding")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

func (s *bindingService) Rebind(ctx context.Context, actor entity.Actor, input *usecase.BindInput) (*entity.Binding, error) {
	if !service.Authorize(actor.Role, service.ActionManageBindings) {
		return nil, domainerrors.ErrPermissionDenied
	}
	if input == nil {
		return nil, domainerrors.ErrValidation.WithDetails("missing binding fields")
	}

	var (
		binding *entity.Binding
		removed *entity.QueueEntry
	)

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		bindingRepo := factory.NewBindingRepository()
		current, err := bindingRepo.FindActiveBindingByProfessional(ctx, input.ProfessionalID)
		if err != nil && !errors.Is(err, repository.ErrBindingNotFound) {
			return errors.Wrap(err, "failed to find binding")
		}

		if current != nil {
			queueRepo := factory.NewQueueRepository()
			entry, err := queueRepo.FindEntryByProfessional(ctx, input.ProfessionalID)
			if err != nil && !errors.Is(err, repository.ErrEntryNotFound) {
				return errors.Wrap(err, "failed to find queue entry")
			}
			if entry != nil {
				if err := queueRepo.LockHubQueue(ctx, entry.HubID); err != nil {
					return errors.Wrap(err, "failed to lock hub queue")
				}
				// The line may have been re-numbered while we waited for the
				// lock; shift from the entry's current position, not the
				// pre-lock snapshot.
				entry, err = queueRepo.FindEntryByProfessional(ctx, input.ProfessionalID)
				if err != nil && !errors.Is(err, repository.ErrEntryNotFound) {
					return errors.Wrap(err, "failed to find queue entry")
				}
				if entry != nil {
					if err := queueRepo.DeleteEntry(ctx, entry.ID); err != nil {
						return errors.Wrap(err, "failed to delete queue entry")
					}
					if entry.IsWaiting() && entry.Position != nil {
						if err := queueRepo.ShiftPositionsDown(ctx, entry.HubID, *entry.Position); err != nil {
							return errors.Wrap(err, "failed to close queue gap")
						}
					}
					removed = entry
				}
			}

			if err := bindingRepo.DeactivateBinding(ctx, current.ID); err != nil {
				return errors.Wrap(err, "failed to deactivate binding")
			}
		}

		binding, err = s.bind(ctx, factory, input)

		return err
	})
	if err != nil {
		return nil, err
	}

	if removed != nil {
		s.appendUnbindHistory(ctx, removed)
	}
	s.audit.Record(ctx, "professional_rebound", constants.AuditCategoryBinding,
		"binding", binding.ID.String(), map[string]any{
			"hub_id":          input.HubID.String(),
			"professional_id": input.ProfessionalID.String(),
			"admin_id":        actor.ProfessionalID.String(),
		})

	return binding, nil
}

func (s *bindingService) FindForProfessional(ctx context.Context, professionalID uuid.UUID) (*entity.Binding, error) {
	binding, err := s.bindingRepo.FindActiveBindingByProfessional(ctx, professionalID)
	if err != nil {
		if errors.Is(err, repository.ErrBindingNotFound) {
			return nil, domainerrors.ErrNotBound
		}

		return nil, errors.Wrap(err, "failed to find binding")
	}

	return binding, nil
}

func (s *bindingService) appendUnbindHistory(ctx context.Context, entry *entity.QueueEntry) {
	event := &entity.HistoryEvent{
		ID:             uuid.New(),
		HubID:          entry.HubID,
		ProfessionalID: entry.ProfessionalID,
		DisplayName:    entry.DisplayName,
		Action:         entity.HistoryActionRemoved,
		Note:           "desvinculado da central",
		CreatedAt:      time.Now(),
	}

	if err := s.historyRepo.AppendEvent(ctx, event); err != nil {
		s.logger.Error("failed to append history event",
			slog.String("action", string(event.Action)),
			slog.String("professional_id", event.ProfessionalID.String()),
			slog.Any("error", err),
		)
	}
}
