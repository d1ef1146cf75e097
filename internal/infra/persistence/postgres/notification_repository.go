package postgres

import (
	"context"
	"encoding/json"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/repository"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notificationRepository implements the domain's NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// UpsertNotification writes the professional's mailbox slot, overwriting any
// prior content whether or not it was read.
func (repo *notificationRepository) UpsertNotification(ctx context.Context, notification *entity.Notification) error {
	notificationM, err := fromNotificationDomain(notification)
	if err != nil {
		return err
	}

	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "professional_id"}},
			UpdateAll: true,
		}).
		Create(notificationM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert notification")
	}

	return nil
}

// DrainUnread marks the professional's unread notification read and returns
// it. The conditional UPDATE with RETURNING makes the read-and-mark a single
// statement, so concurrent drains deliver the message at most once.
func (repo *notificationRepository) DrainUnread(ctx context.Context, professionalID uuid.UUID) (*entity.Notification, error) {
	var notificationM model.NotificationModel
	result := repo.db.WithContext(ctx).
		Model(&notificationM).
		Clauses(clause.Returning{}).
		Where("professional_id = ? AND read = ?", professionalID, false).
		Update("read", true)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to drain notification")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotificationNotFound
	}

	return toNotificationDomain(&notificationM)
}

// MarkRead flags the professional's notification as read.
func (repo *notificationRepository) MarkRead(ctx context.Context, professionalID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("professional_id = ?", professionalID).
		Update("read", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark notification read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

func fromNotificationDomain(notification *entity.Notification) (*model.NotificationModel, error) {
	payload, err := json.Marshal(notification.Payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal notification payload")
	}

	return &model.NotificationModel{
		ProfessionalID: notification.ProfessionalID,
		Kind:           string(notification.Kind),
		Message:        notification.Message,
		Payload:        payload,
		Read:           notification.Read,
		CreatedAt:      notification.CreatedAt,
	}, nil
}

func toNotificationDomain(notificationM *model.NotificationModel) (*entity.Notification, error) {
	var payload entity.NotificationPayload
	if len(notificationM.Payload) > 0 {
		if err := json.Unmarshal(notificationM.Payload, &payload); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal notification payload")
		}
	}

	return &entity.Notification{
		ProfessionalID: notificationM.ProfessionalID,
		Kind:           entity.NotificationKind(notificationM.Kind),
		Message:        notificationM.Message,
		Payload:        payload,
		Read:           notificationM.Read,
		CreatedAt:      notificationM.CreatedAt,
	}, nil
}
