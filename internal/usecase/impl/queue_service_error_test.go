package impl

import (
	"context"
	"math"
	"testing"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueService_Enter_NotBound(t *testing.T) {
	fx := createTestQueueService(t)
	fx.seedHub("Central Lapa", true)

	actor := entity.Actor{ProfessionalID: uuid.New(), DisplayName: "Ana", Role: entity.RoleProfessional}
	_, err := fx.service.Enter(context.Background(), actor, &usecase.EnterInput{Latitude: 0, Longitude: 0})
	requireAppError(t, err, domainerrors.ErrNotBound)
}

func TestQueueService_Enter_InactiveHub(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", false)
	actor := fx.seedBoundProfessional(hub, "Ana")

	_, err := fx.service.Enter(context.Background(), actor, &usecase.EnterInput{Latitude: 0, Longitude: 0})
	requireAppError(t, err, domainerrors.ErrNotBound)
	assert.Nil(t, fx.store.entryByProfessional(actor.ProfessionalID))
}

func TestQueueService_Enter_OutsideRadius(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	hub.RadiusMeters = 900
	actor := fx.seedBoundProfessional(hub, "Ana")

	// ~1 km from the hub center, radius is 900 m. The error carries both
	// numbers so the professional knows how far off they are.
	_, err := fx.service.Enter(context.Background(), actor, &usecase.EnterInput{Latitude: 0.009, Longitude: 0})
	requireAppError(t, err, domainerrors.ErrDistanceExceeded)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "distance_meters=1002 allowed_radius_meters=900", appErr.Details())

	assert.Nil(t, fx.store.entryByProfessional(actor.ProfessionalID))
	assert.Empty(t, fx.store.history)
	assert.Empty(t, fx.publisher.actions())
}

func TestQueueService_Enter_AlreadyInQueue(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")
	fx.mustEnter(t, actor)

	_, err := fx.service.Enter(context.Background(), actor, &usecase.EnterInput{Latitude: 0, Longitude: 0})
	requireAppError(t, err, domainerrors.ErrAlreadyInQueue)

	entry := fx.store.entryByProfessional(actor.ProfessionalID)
	require.NotNil(t, entry)
	assert.Equal(t, 1, *entry.Position)
}

func TestQueueService_Enter_InvalidCoordinates(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")

	tests := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"latitude out of range", 95, 0},
		{"longitude out of range", 0, 181},
		{"not a number", math.NaN(), 0},
		{"infinite", 0, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.Enter(context.Background(), actor, &usecase.EnterInput{Latitude: tt.lat, Longitude: tt.lon})
			requireAppError(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestQueueService_Enter_NilInput(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")

	_, err := fx.service.Enter(context.Background(), actor, nil)
	requireAppError(t, err, domainerrors.ErrValidation)
}

func TestQueueService_Dispatch_PermissionDenied(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")
	fx.mustEnter(t, actor)

	_, err := fx.service.Dispatch(context.Background(), actor, hub.ID, actor.ProfessionalID)
	requireAppError(t, err, domainerrors.ErrPermissionDenied)

	_, err = fx.service.DispatchPriority(context.Background(), actor, hub.ID, actor.ProfessionalID)
	requireAppError(t, err, domainerrors.ErrPermissionDenied)
}

func TestQueueService_Dispatch_HubNotFound(t *testing.T) {
	fx := createTestQueueService(t)

	_, err := fx.service.Dispatch(context.Background(), adminActor(), uuid.New(), uuid.New())
	requireAppError(t, err, domainerrors.ErrHubNotFound)
}

func TestQueueService_Dispatch_NotInQueue(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)

	_, err := fx.service.Dispatch(context.Background(), adminActor(), hub.ID, uuid.New())
	requireAppError(t, err, domainerrors.ErrNotInQueue)
}

func TestQueueService_Dispatch_WrongHub(t *testing.T) {
	fx := createTestQueueService(t)
	hubA := fx.seedHub("Central Lapa", true)
	hubB := fx.seedHub("Central Mooca", true)
	actor := fx.seedBoundProfessional(hubA, "Ana")
	fx.mustEnter(t, actor)

	_, err := fx.service.Dispatch(context.Background(), adminActor(), hubB.ID, actor.ProfessionalID)
	requireAppError(t, err, domainerrors.ErrNotInQueue)

	entry := fx.store.entryByProfessional(actor.ProfessionalID)
	require.NotNil(t, entry)
	assert.Equal(t, entity.QueueStatusWaiting, entry.Status)
}

func TestQueueService_Dispatch_AlreadyEnRoute(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")
	fx.mustEnter(t, actor)

	admin := adminActor()
	_, err := fx.service.Dispatch(context.Background(), admin, hub.ID, actor.ProfessionalID)
	require.NoError(t, err)

	// A second dispatch observes the status change and fails cleanly.
	_, err = fx.service.Dispatch(context.Background(), admin, hub.ID, actor.ProfessionalID)
	requireAppError(t, err, domainerrors.ErrNotInQueue)
}

func TestQueueService_MoveToBack_PermissionDenied(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")
	fx.mustEnter(t, actor)

	_, err := fx.service.MoveToBack(context.Background(), actor, hub.ID, actor.ProfessionalID)
	requireAppError(t, err, domainerrors.ErrPermissionDenied)
}

func TestQueueService_MoveToBack_EnRoute(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")
	fx.mustEnter(t, actor)

	admin := adminActor()
	_, err := fx.service.Dispatch(context.Background(), admin, hub.ID, actor.ProfessionalID)
	require.NoError(t, err)

	_, err = fx.service.MoveToBack(context.Background(), admin, hub.ID, actor.ProfessionalID)
	requireAppError(t, err, domainerrors.ErrNotInQueue)
}

func TestQueueService_Remove_PermissionDenied(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")
	fx.mustEnter(t, actor)

	err := fx.service.Remove(context.Background(), actor, hub.ID, actor.ProfessionalID, "")
	requireAppError(t, err, domainerrors.ErrPermissionDenied)
	assert.NotNil(t, fx.store.entryByProfessional(actor.ProfessionalID))
}

func TestQueueService_Remove_WrongHub(t *testing.T) {
	fx := createTestQueueService(t)
	hubA := fx.seedHub("Central Lapa", true)
	hubB := fx.seedHub("Central Mooca", true)
	actor := fx.seedBoundProfessional(hubA, "Ana")
	fx.mustEnter(t, actor)

	err := fx.service.Remove(context.Background(), adminActor(), hubB.ID, actor.ProfessionalID, "")
	requireAppError(t, err, domainerrors.ErrNotInQueue)
	assert.NotNil(t, fx.store.entryByProfessional(actor.ProfessionalID))
}

func TestQueueService_Exit_NotInQueue(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")

	err := fx.service.Exit(context.Background(), actor)
	requireAppError(t, err, domainerrors.ErrNotInQueue)
}

func TestQueueService_ListQueue_PermissionDenied(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")

	_, err := fx.service.ListQueue(context.Background(), actor, hub.ID)
	requireAppError(t, err, domainerrors.ErrPermissionDenied)
}

func TestQueueService_ListQueue_HubNotFound(t *testing.T) {
	fx := createTestQueueService(t)

	_, err := fx.service.ListQueue(context.Background(), adminActor(), uuid.New())
	requireAppError(t, err, domainerrors.ErrHubNotFound)
}

func TestQueueService_MyPosition_NotInQueue(t *testing.T) {
	fx := createTestQueueService(t)
	hub := fx.seedHub("Central Lapa", true)
	actor := fx.seedBoundProfessional(hub, "Ana")

	_, err := fx.service.MyPosition(context.Background(), actor)
	requireAppError(t, err, domainerrors.ErrNotInQueue)
}

func TestQueueService_WhichHub_NotBound(t *testing.T) {
	fx := createTestQueueService(t)

	actor := entity.Actor{ProfessionalID: uuid.New(), Role: entity.RoleProfessional}
	_, err := fx.service.WhichHub(context.Background(), actor)
	requireAppError(t, err, domainerrors.ErrNotBound)
}
