package impl

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestQueueService_RandomSequence_PositionsStayContiguous drives the engine
// through a long random mix of operations and checks after every step that
// the waiting positions of each hub are exactly 1..N.
func TestQueueService_RandomSequence_PositionsStayContiguous(t *testing.T) {
	fx := createTestQueueService(t)
	rng := rand.New(rand.NewSource(42))

	hubs := []*entity.Hub{
		fx.seedHub("Central Lapa", true),
		fx.seedHub("Central Mooca", true),
	}
	var actors []entity.Actor
	for i, hub := range hubs {
		for j := 0; j < 6; j++ {
			actors = append(actors, fx.seedBoundProfessional(hub, names[(i*6+j)%len(names)]))
		}
	}
	actorHub := func(actor entity.Actor) uuid.UUID {
		for _, hub := range hubs {
			for _, b := range fx.store.bindings {
				if b.ProfessionalID == actor.ProfessionalID && b.HubID == hub.ID {
					return hub.ID
				}
			}
		}
		t.Fatal("actor without binding")

		return uuid.Nil
	}

	ctx := context.Background()
	admin := adminActor()
	checkin := &usecase.EnterInput{Latitude: 0, Longitude: 0}

	for step := 0; step < 400; step++ {
		actor := actors[rng.Intn(len(actors))]
		hubID := actorHub(actor)

		var err error
		switch rng.Intn(6) {
		case 0:
			_, err = fx.service.Enter(ctx, actor, checkin)
		case 1:
			_, err = fx.service.Dispatch(ctx, admin, hubID, actor.ProfessionalID)
		case 2:
			_, err = fx.service.DispatchPriority(ctx, admin, hubID, actor.ProfessionalID)
		case 3:
			_, err = fx.service.MoveToBack(ctx, admin, hubID, actor.ProfessionalID)
		case 4:
			err = fx.service.Remove(ctx, admin, hubID, actor.ProfessionalID, "")
		case 5:
			err = fx.service.Exit(ctx, actor)
		}
		if err != nil {
			requireExpectedQueueError(t, err)
		}

		for _, hub := range hubs {
			positions := fx.store.waitingPositions(hub.ID)
			for i, pos := range positions {
				require.Equalf(t, i+1, pos, "step %d: hub %s positions %v", step, hub.Name, positions)
			}
		}
	}
}

var names = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Fábio"}

// requireExpectedQueueError accepts only the domain errors a random but
// well-formed operation mix can produce.
func requireExpectedQueueError(t *testing.T, err error) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Contains(t, []string{
		domainerrors.ErrAlreadyInQueue.ErrorCode(),
		domainerrors.ErrNotInQueue.ErrorCode(),
	}, appErr.ErrorCode())
}
