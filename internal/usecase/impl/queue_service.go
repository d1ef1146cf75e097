// Package impl contains the concrete use case implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/config"
	deliverycontext "github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/context"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/constants"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/repository"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/service"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/errors"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type queueService struct {
	txManager        repository.TransactionManager
	queueRepo        repository.QueueRepository
	bindingRepo      repository.BindingRepository
	hubRepo          repository.HubRepository
	historyRepo      repository.HistoryRepository
	notificationRepo repository.NotificationRepository
	geofence         service.GeofenceValidator
	publisher        service.EventPublisher
	audit            service.AuditSink
	cfg              *config.Config
	logger           *slog.Logger
}

// NewQueueService creates the dispatch queue engine.
func NewQueueService(
	txManager repository.TransactionManager,
	queueRepo repository.QueueRepository,
	bindingRepo repository.BindingRepository,
	hubRepo repository.HubRepository,
	historyRepo repository.HistoryRepository,
	notificationRepo repository.NotificationRepository,
	geofence service.GeofenceValidator,
	publisher service.EventPublisher,
	audit service.AuditSink,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.QueueUsecase {
	return &queueService{
		txManager:        txManager,
		queueRepo:        queueRepo,
		bindingRepo:      bindingRepo,
		hubRepo:          hubRepo,
		historyRepo:      historyRepo,
		notificationRepo: notificationRepo,
		geofence:         geofence,
		publisher:        publisher,
		audit:            audit,
		cfg:              cfg,
		logger:           logger,
	}
}

// Enter admits the professional into their hub's line, or applies a return
// when they are currently en route.
func (s *queueService) Enter(ctx context.Context, actor entity.Actor, input *usecase.EnterInput) (*usecase.EnterResult, error) {
	if input == nil {
		return nil, domainerrors.ErrValidation.WithDetails("missing check-in coordinates")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	var (
		result    *usecase.EnterResult
		hub       *entity.Hub
		histEvent *entity.HistoryEvent
	)

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		bindingRepo := factory.NewBindingRepository()
		binding, err := bindingRepo.FindActiveBindingByProfessional(ctx, actor.ProfessionalID)
		if err != nil {
			if errors.Is(err, repository.ErrBindingNotFound) {
				return domainerrors.ErrNotBound
			}

			return errors.Wrap(err, "failed to find binding")
		}

		hubRepo := factory.NewHubRepository()
		hub, err = hubRepo.FindHubByID(ctx, binding.HubID)
		if err != nil {
			if errors.Is(err, repository.ErrHubNotFound) {
				return domainerrors.ErrNotBound.WithDetails("bound hub no longer exists")
			}

			return errors.Wrap(err, "failed to find hub")
		}
		if !hub.IsActive {
			return domainerrors.ErrNotBound.WithDetails("bound hub is inactive")
		}

		checkin := orb.Point{input.Longitude, input.Latitude}
		within, distance := s.geofence.WithinRadius(checkin, hub)
		if !within {
			return domainerrors.ErrDistanceExceeded.WithDetails(
				fmt.Sprintf("distance_meters=%.0f allowed_radius_meters=%.0f", distance, hub.RadiusMeters))
		}

		queueRepo := factory.NewQueueRepository()
		if err := queueRepo.LockHubQueue(ctx, hub.ID); err != nil {
			return errors.Wrap(err, "failed to lock hub queue")
		}

		now := time.Now()
		name := displayName(actor, binding)

		entry, err := queueRepo.FindEntryByProfessional(ctx, actor.ProfessionalID)
		if err != nil {
			if !errors.Is(err, repository.ErrEntryNotFound) {
				return errors.Wrap(err, "failed to find queue entry")
			}

			// Fresh entrance: append to the tail.
			maxPos, err := queueRepo.MaxWaitingPosition(ctx, hub.ID)
			if err != nil {
				return errors.Wrap(err, "failed to read max waiting position")
			}
			pos := maxPos + 1

			entry = &entity.QueueEntry{
				ID:               uuid.New(),
				HubID:            hub.ID,
				ProfessionalID:   actor.ProfessionalID,
				DisplayName:      name,
				Status:           entity.QueueStatusWaiting,
				Position:         &pos,
				EnteredAt:        now,
				CheckinLatitude:  input.Latitude,
				CheckinLongitude: input.Longitude,
			}
			if err := queueRepo.CreateEntry(ctx, entry); err != nil {
				return errors.Wrap(err, "failed to create queue entry")
			}

			result = &usecase.EnterResult{Outcome: usecase.EnterOutcomeEntrance, Position: pos, Entry: entry}
			histEvent = &entity.HistoryEvent{
				HubID:          hub.ID,
				HubName:        hub.Name,
				ProfessionalID: actor.ProfessionalID,
				DisplayName:    name,
				Action:         entity.HistoryActionEntrance,
			}

			return nil
		}

		if entry.IsWaiting() {
			return domainerrors.ErrAlreadyInQueue
		}

		// The professional is en route: this check-in is a return.
		result, histEvent, err = s.applyReturn(ctx, queueRepo, hub, entry, input, now)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.appendHistory(ctx, histEvent)
	s.publishEvent(ctx, hub.ID, actor.ProfessionalID, string(result.Outcome), &result.Position)
	s.audit.Record(ctx, string(result.Outcome), constants.AuditCategoryQueue,
		"queue_entry", result.Entry.ID.String(), map[string]any{
			"hub_id":   hub.ID.String(),
			"position": result.Position,
		})

	return result, nil
}

// applyReturn re-inserts an en-route entry into the waiting line. Non-priority
// returns append to the tail; single-ride returns reclaim the original slot,
// clamped to the head when the queue shrank below it.
func (s *queueService) applyReturn(
	ctx context.Context,
	queueRepo repository.QueueRepository,
	hub *entity.Hub,
	entry *entity.QueueEntry,
	input *usecase.EnterInput,
	now time.Time,
) (*usecase.EnterResult, *entity.HistoryEvent, error) {
	outcome := usecase.EnterOutcomeReturn
	action := entity.HistoryActionReturn
	note := ""

	var newPos int
	if !entry.SingleRide {
		maxPos, err := queueRepo.MaxWaitingPosition(ctx, entry.HubID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to read max waiting position")
		}
		newPos = maxPos + 1
	} else {
		outcome = usecase.EnterOutcomePriorityReturn
		action = entity.HistoryActionPriorityReturn

		orig := 1
		if entry.OriginalPosition != nil {
			orig = *entry.OriginalPosition
		}
		note = fmt.Sprintf("posição original %d", orig)

		first, err := queueRepo.MinWaitingPosition(ctx, entry.HubID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to read min waiting position")
		}
		if first == 0 {
			first = 1
		}
		maxPos, err := queueRepo.MaxWaitingPosition(ctx, entry.HubID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to read max waiting position")
		}

		// Never land after where the professional would have been had they
		// not been dispatched, even if the queue shrank meanwhile. The
		// position range must stay contiguous, so the slot is also capped
		// at the current tail.
		switch {
		case orig <= first:
			newPos = first
		case orig > maxPos+1:
			newPos = maxPos + 1
		default:
			newPos = orig
		}
		if err := queueRepo.ShiftPositionsUp(ctx, entry.HubID, newPos); err != nil {
			return nil, nil, errors.Wrap(err, "failed to open priority slot")
		}
	}

	var enRouteMins *int
	if entry.DispatchedAt != nil {
		mins := minutesBetween(*entry.DispatchedAt, now)
		enRouteMins = &mins
	}

	entry.Status = entity.QueueStatusWaiting
	entry.Position = &newPos
	entry.ReturnedAt = &now
	entry.CheckinLatitude = input.Latitude
	entry.CheckinLongitude = input.Longitude
	entry.SingleRide = false
	entry.OriginalPosition = nil
	entry.PositionReason = nil

	if err := queueRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, nil, errors.Wrap(err, "failed to update queue entry")
	}

	result := &usecase.EnterResult{Outcome: outcome, Position: newPos, Entry: entry}
	histEvent := &entity.HistoryEvent{
		HubID:          hub.ID,
		HubName:        hub.Name,
		ProfessionalID: entry.ProfessionalID,
		DisplayName:    entry.DisplayName,
		Action:         action,
		EnRouteMinutes: enRouteMins,
		Note:           note,
	}

	return result, histEvent, nil
}

// Dispatch sends a waiting professional out on a route.
func (s *queueService) Dispatch(ctx context.Context, actor entity.Actor, hubID, professionalID uuid.UUID) (*entity.QueueEntry, error) {
	return s.dispatch(ctx, actor, hubID, professionalID, false)
}

// DispatchPriority dispatches with guaranteed priority re-entry.
func (s *queueService) DispatchPriority(ctx context.Context, actor entity.Actor, hubID, professionalID uuid.UUID) (*entity.QueueEntry, error) {
	return s.dispatch(ctx, actor, hubID, professionalID, true)
}

func (s *queueService) dispatch(ctx context.Context, actor entity.Actor, hubID, professionalID uuid.UUID, priority bool) (*entity.QueueEntry, error) {
	policyAction := service.ActionDispatch
	if priority {
		policyAction = service.ActionDispatchPriority
	}
	if !service.Authorize(actor.Role, policyAction) {
		return nil, domainerrors.ErrPermissionDenied
	}

	var (
		entry    *entity.QueueEntry
		hub      *entity.Hub
		oldPos   int
		waitMins int
	)

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		var err error
		hub, err = factory.NewHubRepository().FindHubByID(ctx, hubID)
		if err != nil {
			if errors.Is(err, repository.ErrHubNotFound) {
				return domainerrors.ErrHubNotFound
			}

			return errors.Wrap(err, "failed to find hub")
		}

		queueRepo := factory.NewQueueRepository()
		if err := queueRepo.LockHubQueue(ctx, hubID); err != nil {
			return errors.Wrap(err, "failed to lock hub queue")
		}

		entry, err = queueRepo.FindEntryByProfessional(ctx, professionalID)
		if err != nil {
			if errors.Is(err, repository.ErrEntryNotFound) {
				return domainerrors.ErrNotInQueue
			}

			return errors.Wrap(err, "failed to find queue entry")
		}
		// A concurrent dispatch may have won the lock first; the losing call
		// observes the status change here and fails cleanly.
		if entry.HubID != hubID || !entry.IsWaiting() || entry.Position == nil {
			return domainerrors.ErrNotInQueue
		}

		now := time.Now()
		oldPos = *entry.Position
		waitMins = minutesBetween(waitingSince(entry), now)

		entry.Status = entity.QueueStatusEnRoute
		entry.Position = nil
		entry.DispatchedAt = &now
		entry.PositionReason = nil
		if priority {
			entry.SingleRide = true
			entry.OriginalPosition = &oldPos
		} else {
			entry.SingleRide = false
			entry.OriginalPosition = nil
		}

		if err := queueRepo.UpdateEntry(ctx, entry); err != nil {
			return errors.Wrap(err, "failed to update queue entry")
		}
		if err := queueRepo.ShiftPositionsDown(ctx, hubID, oldPos); err != nil {
			return errors.Wrap(err, "failed to close queue gap")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	action := entity.HistoryActionDispatched
	kind := entity.NotificationKindDispatched
	message := "Roteiro despachado. Retorne à central ao concluir as entregas."
	note := ""
	if priority {
		action = entity.HistoryActionDispatchedOnce
		kind = entity.NotificationKindSingleRide
		message = "Corrida única despachada. Seu lugar na fila está garantido no retorno."
		note = fmt.Sprintf("posição original %d", oldPos)
	}

	s.appendHistory(ctx, &entity.HistoryEvent{
		HubID:          hub.ID,
		HubName:        hub.Name,
		ProfessionalID: professionalID,
		DisplayName:    entry.DisplayName,
		Action:         action,
		WaitMinutes:    &waitMins,
		Note:           note,
		AdminID:        adminID(actor),
	})
	s.pushNotification(ctx, &entity.Notification{
		ProfessionalID: professionalID,
		Kind:           kind,
		Message:        message,
		Payload: entity.NotificationPayload{
			HubID:            hub.ID,
			HubName:          hub.Name,
			PreviousPosition: oldPos,
			SingleRide:       priority,
			DispatchedAt:     *entry.DispatchedAt,
		},
	})
	s.publishEvent(ctx, hub.ID, professionalID, string(action), nil)
	s.audit.Record(ctx, string(action), constants.AuditCategoryQueue,
		"queue_entry", entry.ID.String(), map[string]any{
			"hub_id":            hub.ID.String(),
			"previous_position": oldPos,
			"single_ride":       priority,
			"admin_id":          actor.ProfessionalID.String(),
		})

	return entry, nil
}

// MoveToBack sends a waiting professional to the end of the line.
func (s *queueService) MoveToBack(ctx context.Context, actor entity.Actor, hubID, professionalID uuid.UUID) (*entity.QueueEntry, error) {
	if !service.Authorize(actor.Role, service.ActionMoveToBack) {
		return nil, domainerrors.ErrPermissionDenied
	}

	var (
		entry  *entity.QueueEntry
		hub    *entity.Hub
		oldPos int
		noop   bool
	)

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		var err error
		hub, err = factory.NewHubRepository().FindHubByID(ctx, hubID)
		if err != nil {
			if errors.Is(err, repository.ErrHubNotFound) {
				return domainerrors.ErrHubNotFound
			}

			return errors.Wrap(err, "failed to find hub")
		}

		queueRepo := factory.NewQueueRepository()
		if err := queueRepo.LockHubQueue(ctx, hubID); err != nil {
			return errors.Wrap(err, "failed to lock hub queue")
		}

		entry, err = queueRepo.FindEntryByProfessional(ctx, professionalID)
		if err != nil {
			if errors.Is(err, repository.ErrEntryNotFound) {
				return domainerrors.ErrNotInQueue
			}

			return errors.Wrap(err, "failed to find queue entry")
		}
		if entry.HubID != hubID || !entry.IsWaiting() || entry.Position == nil {
			return domainerrors.ErrNotInQueue
		}

		maxPos, err := queueRepo.MaxWaitingPosition(ctx, hubID)
		if err != nil {
			return errors.Wrap(err, "failed to read max waiting position")
		}

		oldPos = *entry.Position
		if oldPos == maxPos {
			noop = true

			return nil
		}

		if err := queueRepo.ShiftPositionsDown(ctx, hubID, oldPos); err != nil {
			return errors.Wrap(err, "failed to close queue gap")
		}

		newPos := maxPos
		reason := entity.PositionReasonMovedToBack
		entry.Position = &newPos
		entry.SingleRide = false
		entry.OriginalPosition = nil
		entry.PositionReason = &reason

		if err := queueRepo.UpdateEntry(ctx, entry); err != nil {
			return errors.Wrap(err, "failed to update queue entry")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if noop {
		return entry, nil
	}

	s.appendHistory(ctx, &entity.HistoryEvent{
		HubID:          hub.ID,
		HubName:        hub.Name,
		ProfessionalID: professionalID,
		DisplayName:    entry.DisplayName,
		Action:         entity.HistoryActionMovedToBack,
		Note:           fmt.Sprintf("posição %d para %d", oldPos, *entry.Position),
		AdminID:        adminID(actor),
	})
	s.publishEvent(ctx, hub.ID, professionalID, string(entity.HistoryActionMovedToBack), entry.Position)
	s.audit.Record(ctx, string(entity.HistoryActionMovedToBack), constants.AuditCategoryQueue,
		"queue_entry", entry.ID.String(), map[string]any{
			"hub_id":   hub.ID.String(),
			"from":     oldPos,
			"to":       *entry.Position,
			"admin_id": actor.ProfessionalID.String(),
		})

	return entry, nil
}

// Remove deletes a professional's entry on behalf of an administrator.
func (s *queueService) Remove(ctx context.Context, actor entity.Actor, hubID, professionalID uuid.UUID, note string) error {
	if !service.Authorize(actor.Role, service.ActionRemove) {
		return domainerrors.ErrPermissionDenied
	}

	return s.removeEntry(ctx, actor, &hubID, professionalID, note, entity.HistoryActionRemoved)
}

// Exit removes the acting professional's own entry.
func (s *queueService) Exit(ctx context.Context, actor entity.Actor) error {
	return s.removeEntry(ctx, actor, nil, actor.ProfessionalID, "", entity.HistoryActionVoluntaryExit)
}

func (s *queueService) removeEntry(
	ctx context.Context,
	actor entity.Actor,
	hubID *uuid.UUID,
	professionalID uuid.UUID,
	note string,
	action entity.HistoryAction,
) error {
	var (
		entry       *entity.QueueEntry
		hubName     string
		eventHubID  uuid.UUID
		waitMins    *int
		enRouteMins *int
	)

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		queueRepo := factory.NewQueueRepository()

		// Resolve the hub before taking the lock; the entry is re-read under
		// the lock because it may change in between.
		probe, err := queueRepo.FindEntryByProfessional(ctx, professionalID)
		if err != nil {
			if errors.Is(err, repository.ErrEntryNotFound) {
				return domainerrors.ErrNotInQueue
			}

			return errors.Wrap(err, "failed to find queue entry")
		}
		if hubID != nil && probe.HubID != *hubID {
			return domainerrors.ErrNotInQueue
		}

		if err := queueRepo.LockHubQueue(ctx, probe.HubID); err != nil {
			return errors.Wrap(err, "failed to lock hub queue")
		}

		entry, err = queueRepo.FindEntryByProfessional(ctx, professionalID)
		if err != nil {
			if errors.Is(err, repository.ErrEntryNotFound) {
				return domainerrors.ErrNotInQueue
			}

			return errors.Wrap(err, "failed to find queue entry")
		}
		eventHubID = entry.HubID

		if hub, err := factory.NewHubRepository().FindHubByID(ctx, entry.HubID); err == nil {
			hubName = hub.Name
		}

		now := time.Now()
		switch {
		case entry.IsWaiting():
			mins := minutesBetween(waitingSince(entry), now)
			waitMins = &mins
		case entry.DispatchedAt != nil:
			mins := minutesBetween(waitingSince(entry), *entry.DispatchedAt)
			waitMins = &mins
			routeMins := minutesBetween(*entry.DispatchedAt, now)
			enRouteMins = &routeMins
		}

		if err := queueRepo.DeleteEntry(ctx, entry.ID); err != nil {
			return errors.Wrap(err, "failed to delete queue entry")
		}
		if entry.IsWaiting() && entry.Position != nil {
			if err := queueRepo.ShiftPositionsDown(ctx, entry.HubID, *entry.Position); err != nil {
				return errors.Wrap(err, "failed to close queue gap")
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.appendHistory(ctx, &entity.HistoryEvent{
		HubID:          eventHubID,
		HubName:        hubName,
		ProfessionalID: professionalID,
		DisplayName:    entry.DisplayName,
		Action:         action,
		WaitMinutes:    waitMins,
		EnRouteMinutes: enRouteMins,
		Note:           note,
		AdminID:        adminID(actor),
	})
	s.publishEvent(ctx, eventHubID, professionalID, string(action), nil)
	s.audit.Record(ctx, string(action), constants.AuditCategoryQueue,
		"queue_entry", entry.ID.String(), map[string]any{
			"hub_id": eventHubID.String(),
		})

	return nil
}

// ListQueue returns the admin view of a hub's queue.
func (s *queueService) ListQueue(ctx context.Context, actor entity.Actor, hubID uuid.UUID) (*usecase.QueueListing, error) {
	if !service.Authorize(actor.Role, service.ActionListQueue) {
		return nil, domainerrors.ErrPermissionDenied
	}

	if _, err := s.hubRepo.FindHubByID(ctx, hubID); err != nil {
		if errors.Is(err, repository.ErrHubNotFound) {
			return nil, domainerrors.ErrHubNotFound
		}

		return nil, errors.Wrap(err, "failed to find hub")
	}

	waiting, err := s.queueRepo.FindWaitingByHub(ctx, hubID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list waiting entries")
	}
	enRoute, err := s.queueRepo.FindEnRouteByHub(ctx, hubID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list en-route entries")
	}

	threshold := s.cfg.QueueOrDefault().OverdueThreshold
	now := time.Now()
	var overdue []usecase.OverdueAlert
	for _, entry := range enRoute {
		if entry.DispatchedAt == nil {
			continue
		}
		age := now.Sub(*entry.DispatchedAt)
		if age > threshold {
			overdue = append(overdue, usecase.OverdueAlert{
				Entry:          entry,
				EnRouteFor:     age,
				ThresholdAgeAt: entry.DispatchedAt.Add(threshold),
			})
		}
	}

	return &usecase.QueueListing{Waiting: waiting, EnRoute: enRoute, Overdue: overdue}, nil
}

// WhichHub reports the acting professional's binding and live entry.
func (s *queueService) WhichHub(ctx context.Context, actor entity.Actor) (*usecase.BindingStatus, error) {
	binding, err := s.bindingRepo.FindActiveBindingByProfessional(ctx, actor.ProfessionalID)
	if err != nil {
		if errors.Is(err, repository.ErrBindingNotFound) {
			return nil, domainerrors.ErrNotBound
		}

		return nil, errors.Wrap(err, "failed to find binding")
	}

	hub, err := s.hubRepo.FindHubByID(ctx, binding.HubID)
	if err != nil && !errors.Is(err, repository.ErrHubNotFound) {
		return nil, errors.Wrap(err, "failed to find hub")
	}

	status := &usecase.BindingStatus{Binding: binding, Hub: hub}

	entry, err := s.queueRepo.FindEntryByProfessional(ctx, actor.ProfessionalID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return status, nil
		}

		return nil, errors.Wrap(err, "failed to find queue entry")
	}
	status.Entry = entry

	return status, nil
}

// MyPosition reports the professional's slot, neighbors and elapsed wait.
func (s *queueService) MyPosition(ctx context.Context, actor entity.Actor) (*usecase.PositionView, error) {
	entry, err := s.queueRepo.FindEntryByProfessional(ctx, actor.ProfessionalID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return nil, domainerrors.ErrNotInQueue
		}

		return nil, errors.Wrap(err, "failed to find queue entry")
	}

	waiting, err := s.queueRepo.FindWaitingByHub(ctx, entry.HubID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list waiting entries")
	}

	view := &usecase.PositionView{
		Status:       entry.Status,
		TotalWaiting: len(waiting),
		Ahead:        []usecase.Neighbor{},
		Behind:       []usecase.Neighbor{},
	}
	if entry.IsEnRoute() {
		return view, nil
	}

	since := waitingSince(entry)
	view.Position = entry.Position
	view.WaitingSince = &since
	view.ElapsedWait = time.Since(since)

	window := s.cfg.QueueOrDefault().NeighborWindow
	own := *entry.Position
	for _, other := range waiting {
		if other.Position == nil || other.ProfessionalID == entry.ProfessionalID {
			continue
		}
		pos := *other.Position
		switch {
		case pos < own && own-pos <= window:
			view.Ahead = append(view.Ahead, usecase.Neighbor{Position: pos, DisplayName: other.DisplayName})
		case pos > own && pos-own <= window:
			view.Behind = append(view.Behind, usecase.Neighbor{Position: pos, DisplayName: other.DisplayName})
		}
	}

	return view, nil
}

// appendHistory writes a ledger event. A failure is logged and swallowed so
// it never rolls back or fails the committed queue mutation.
func (s *queueService) appendHistory(ctx context.Context, event *entity.HistoryEvent) {
	if event == nil {
		return
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if err := s.historyRepo.AppendEvent(ctx, event); err != nil {
		s.logger.Error("failed to append history event",
			slog.String("action", string(event.Action)),
			slog.String("professional_id", event.ProfessionalID.String()),
			slog.Any("error", err),
		)
	}
}

// pushNotification upserts the professional's mailbox slot. A failure is
// logged and swallowed.
func (s *queueService) pushNotification(ctx context.Context, notification *entity.Notification) {
	notification.Read = false
	notification.CreatedAt = time.Now()

	if err := s.notificationRepo.UpsertNotification(ctx, notification); err != nil {
		s.logger.Error("failed to push notification",
			slog.String("kind", string(notification.Kind)),
			slog.String("professional_id", notification.ProfessionalID.String()),
			slog.Any("error", err),
		)
	}
}

func (s *queueService) publishEvent(ctx context.Context, hubID, professionalID uuid.UUID, action string, position *int) {
	event := &service.QueueEvent{
		EventID:        uuid.New().String(),
		HubID:          hubID,
		ProfessionalID: professionalID,
		Action:         action,
		Position:       position,
		OccurredAt:     time.Now(),
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
	}

	if err := s.publisher.PublishQueueEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish queue event",
			slog.String("action", action),
			slog.Any("error", err),
		)
	}
}

// waitingSince is when the entry last became waiting.
func waitingSince(entry *entity.QueueEntry) time.Time {
	if entry.ReturnedAt != nil {
		return *entry.ReturnedAt
	}

	return entry.EnteredAt
}

func minutesBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}

	return int(to.Sub(from) / time.Minute)
}

func adminID(actor entity.Actor) *uuid.UUID {
	if !actor.IsAdmin() {
		return nil
	}
	id := actor.ProfessionalID

	return &id
}

func displayName(actor entity.Actor, binding *entity.Binding) string {
	if actor.DisplayName != "" {
		return actor.DisplayName
	}

	return binding.DisplayName
}

func validateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return domainerrors.ErrValidation.WithDetails("coordinates must be finite numbers")
	}
	if lat < -90 || lat > 90 {
		return domainerrors.ErrValidation.WithDetails(fmt.Sprintf("latitude %.2f out of range [-90, 90]", lat))
	}
	if lon < -180 || lon > 180 {
		return domainerrors.ErrValidation.WithDetails(fmt.Sprintf("longitude %.2f out of range [-180, 180]", lon))
	}

	return nil
}
