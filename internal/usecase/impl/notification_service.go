package impl

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/repository"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates the mailbox drain use case.
func NewNotificationService(notificationRepo repository.NotificationRepository) usecase.NotificationUsecase {
	return &notificationService{notificationRepo: notificationRepo}
}

// Drain hands the mailbox content to exactly one caller: the repository
// marks the slot read in the same statement that fetches it.
func (s *notificationService) Drain(ctx context.Context, professionalID uuid.UUID) (*entity.Notification, error) {
	notification, err := s.notificationRepo.DrainUnread(ctx, professionalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, domainerrors.ErrNoNotification
		}

		return nil, errors.Wrap(err, "failed to drain notification")
	}

	return notification, nil
}

// Ack is idempotent: acknowledging an empty or already-read mailbox succeeds.
func (s *notificationService) Ack(ctx context.Context, professionalID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, professionalID); err != nil &&
		!errors.Is(err, repository.ErrNotificationNotFound) {
		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}
