package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// notificationServiceFixtures holds all test dependencies for notification service tests.
type notificationServiceFixtures struct {
	service usecase.NotificationUsecase
	store   *memStore
}

func createTestNotificationService(t *testing.T) notificationServiceFixtures {
	t.Helper()

	store := newMemStore()
	svc := NewNotificationService(&fakeNotificationRepository{store: store})

	return notificationServiceFixtures{service: svc, store: store}
}

func (fx notificationServiceFixtures) seedNotification(professionalID uuid.UUID, read bool) {
	fx.store.notifications[professionalID] = &entity.Notification{
		ProfessionalID: professionalID,
		Kind:           entity.NotificationKindDispatched,
		Message:        "Roteiro despachado. Retorne à central ao concluir as entregas.",
		Payload: entity.NotificationPayload{
			HubID:            uuid.New(),
			HubName:          "Central Lapa",
			PreviousPosition: 2,
			DispatchedAt:     time.Now(),
		},
		Read:      read,
		CreatedAt: time.Now(),
	}
}

func TestNotificationService_Drain_ReturnsAndMarksRead(t *testing.T) {
	fx := createTestNotificationService(t)
	professionalID := uuid.New()
	fx.seedNotification(professionalID, false)

	notification, err := fx.service.Drain(context.Background(), professionalID)
	require.NoError(t, err)

	assert.Equal(t, entity.NotificationKindDispatched, notification.Kind)
	assert.Equal(t, 2, notification.Payload.PreviousPosition)
	assert.True(t, notification.Read)
	assert.True(t, fx.store.notifications[professionalID].Read)
}

func TestNotificationService_Drain_EmptyMailbox(t *testing.T) {
	fx := createTestNotificationService(t)

	_, err := fx.service.Drain(context.Background(), uuid.New())
	requireAppError(t, err, domainerrors.ErrNoNotification)
}

func TestNotificationService_Drain_AlreadyRead(t *testing.T) {
	fx := createTestNotificationService(t)
	professionalID := uuid.New()
	fx.seedNotification(professionalID, true)

	_, err := fx.service.Drain(context.Background(), professionalID)
	requireAppError(t, err, domainerrors.ErrNoNotification)
}

func TestNotificationService_Drain_ConcurrentDrainsDeliverOnce(t *testing.T) {
	fx := createTestNotificationService(t)
	professionalID := uuid.New()
	fx.seedNotification(professionalID, false)

	const drains = 8
	results := make(chan error, drains)

	var wg sync.WaitGroup
	for range drains {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.service.Drain(context.Background(), professionalID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var delivered, empty int
	for err := range results {
		switch {
		case err == nil:
			delivered++
		default:
			requireAppError(t, err, domainerrors.ErrNoNotification)
			empty++
		}
	}

	assert.Equal(t, 1, delivered)
	assert.Equal(t, drains-1, empty)
	assert.True(t, fx.store.notifications[professionalID].Read)
}

func TestNotificationService_Ack_MarksRead(t *testing.T) {
	fx := createTestNotificationService(t)
	professionalID := uuid.New()
	fx.seedNotification(professionalID, false)

	require.NoError(t, fx.service.Ack(context.Background(), professionalID))
	assert.True(t, fx.store.notifications[professionalID].Read)
}

func TestNotificationService_Ack_EmptyMailboxIsIdempotent(t *testing.T) {
	fx := createTestNotificationService(t)

	require.NoError(t, fx.service.Ack(context.Background(), uuid.New()))
	require.NoError(t, fx.service.Ack(context.Background(), uuid.New()))
}
