package repository

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/errors"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a professional's mailbox is empty.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository persists the one-slot-per-professional mailbox.
type NotificationRepository interface {
	// UpsertNotification writes the professional's mailbox slot, overwriting
	// any prior content whether or not it was read.
	UpsertNotification(ctx context.Context, notification *entity.Notification) error

	// DrainUnread atomically marks the professional's unread notification
	// read and returns it, so concurrent drains deliver it at most once.
	// Returns ErrNotificationNotFound when the mailbox is empty or its
	// content was already read.
	DrainUnread(ctx context.Context, professionalID uuid.UUID) (*entity.Notification, error)

	// MarkRead flags the professional's notification as read.
	MarkRead(ctx context.Context, professionalID uuid.UUID) error
}
