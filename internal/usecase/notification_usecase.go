package usecase

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase drains the one-slot mailbox kept per professional.
type NotificationUsecase interface {
	// Drain returns the professional's current unread notification and marks
	// it read. It fails with NO_NOTIFICATION when the mailbox is empty.
	Drain(ctx context.Context, professionalID uuid.UUID) (*entity.Notification, error)

	// Ack marks the professional's notification read without returning it.
	Ack(ctx context.Context, professionalID uuid.UUID) error
}
