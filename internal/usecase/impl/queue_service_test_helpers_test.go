package impl

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/config"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/repository"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/service"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Queue: &config.QueueConfig{
			OverdueThreshold: 90 * time.Minute,
			NeighborWindow:   3,
		},
	}
}

// memStore is the shared in-memory backing state for the fake repositories.
// The transaction manager snapshots and restores it so rolled-back mutations
// never leak into assertions.
type memStore struct {
	mu            sync.Mutex
	hubs          map[uuid.UUID]*entity.Hub
	bindings      map[uuid.UUID]*entity.Binding
	entries       map[uuid.UUID]*entity.QueueEntry
	history       []*entity.HistoryEvent
	notifications map[uuid.UUID]*entity.Notification

	// onLock, when set, runs once inside the next LockHubQueue call. It
	// stands in for a competing transaction that commits a structural
	// mutation while the caller is waiting for the hub lock.
	onLock func(hubID uuid.UUID)
}

func newMemStore() *memStore {
	return &memStore{
		hubs:          make(map[uuid.UUID]*entity.Hub),
		bindings:      make(map[uuid.UUID]*entity.Binding),
		entries:       make(map[uuid.UUID]*entity.QueueEntry),
		notifications: make(map[uuid.UUID]*entity.Notification),
	}
}

func copyHub(h *entity.Hub) *entity.Hub {
	out := *h

	return &out
}

func copyBinding(b *entity.Binding) *entity.Binding {
	out := *b

	return &out
}

func copyEntry(e *entity.QueueEntry) *entity.QueueEntry {
	out := *e
	if e.Position != nil {
		pos := *e.Position
		out.Position = &pos
	}
	if e.DispatchedAt != nil {
		at := *e.DispatchedAt
		out.DispatchedAt = &at
	}
	if e.ReturnedAt != nil {
		at := *e.ReturnedAt
		out.ReturnedAt = &at
	}
	if e.OriginalPosition != nil {
		pos := *e.OriginalPosition
		out.OriginalPosition = &pos
	}
	if e.PositionReason != nil {
		reason := *e.PositionReason
		out.PositionReason = &reason
	}

	return &out
}

func copyNotification(n *entity.Notification) *entity.Notification {
	out := *n

	return &out
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := newMemStore()
	for id, h := range s.hubs {
		snap.hubs[id] = copyHub(h)
	}
	for id, b := range s.bindings {
		snap.bindings[id] = copyBinding(b)
	}
	for id, e := range s.entries {
		snap.entries[id] = copyEntry(e)
	}
	snap.history = append([]*entity.HistoryEvent(nil), s.history...)
	for id, n := range s.notifications {
		snap.notifications[id] = copyNotification(n)
	}

	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hubs = snap.hubs
	s.bindings = snap.bindings
	s.entries = snap.entries
	s.history = snap.history
	s.notifications = snap.notifications
}

// waitingPositions returns the sorted waiting positions for a hub, for
// asserting the contiguous 1..N invariant.
func (s *memStore) waitingPositions(hubID uuid.UUID) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []int
	for _, e := range s.entries {
		if e.HubID == hubID && e.Status == entity.QueueStatusWaiting && e.Position != nil {
			positions = append(positions, *e.Position)
		}
	}
	sort.Ints(positions)

	return positions
}

func (s *memStore) entryByProfessional(professionalID uuid.UUID) *entity.QueueEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ProfessionalID == professionalID {
			return copyEntry(e)
		}
	}

	return nil
}

type fakeTxManager struct {
	store   *memStore
	factory *fakeRepositoryFactory
}

func newFakeTxManager(store *memStore) *fakeTxManager {
	return &fakeTxManager{
		store:   store,
		factory: &fakeRepositoryFactory{store: store},
	}
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	snap := m.store.snapshot()
	if err := fn(m.factory); err != nil {
		m.store.restore(snap)

		return err
	}

	return nil
}

type fakeRepositoryFactory struct {
	store *memStore
}

func (f *fakeRepositoryFactory) NewHubRepository() repository.HubRepository {
	return &fakeHubRepository{store: f.store}
}

func (f *fakeRepositoryFactory) NewBindingRepository() repository.BindingRepository {
	return &fakeBindingRepository{store: f.store}
}

func (f *fakeRepositoryFactory) NewQueueRepository() repository.QueueRepository {
	return &fakeQueueRepository{store: f.store}
}

type fakeHubRepository struct {
	store *memStore
}

func (r *fakeHubRepository) CreateHub(_ context.Context, hub *entity.Hub) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.hubs[hub.ID] = copyHub(hub)

	return nil
}

func (r *fakeHubRepository) UpdateHub(_ context.Context, hub *entity.Hub) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.hubs[hub.ID]; !ok {
		return repository.ErrHubNotFound
	}
	r.store.hubs[hub.ID] = copyHub(hub)

	return nil
}

func (r *fakeHubRepository) DeleteHub(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.hubs[id]; !ok {
		return repository.ErrHubNotFound
	}
	delete(r.store.hubs, id)

	return nil
}

func (r *fakeHubRepository) FindHubByID(_ context.Context, id uuid.UUID) (*entity.Hub, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	hub, ok := r.store.hubs[id]
	if !ok {
		return nil, repository.ErrHubNotFound
	}

	return copyHub(hub), nil
}

func (r *fakeHubRepository) ListHubs(_ context.Context, onlyActive bool) ([]*entity.Hub, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var hubs []*entity.Hub
	for _, h := range r.store.hubs {
		if onlyActive && !h.IsActive {
			continue
		}
		hubs = append(hubs, copyHub(h))
	}
	sort.Slice(hubs, func(i, j int) bool { return hubs[i].Name < hubs[j].Name })

	return hubs, nil
}

type fakeBindingRepository struct {
	store *memStore
}

func (r *fakeBindingRepository) CreateBinding(_ context.Context, binding *entity.Binding) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.bindings[binding.ID] = copyBinding(binding)

	return nil
}

func (r *fakeBindingRepository) UpdateBinding(_ context.Context, binding *entity.Binding) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.bindings[binding.ID]; !ok {
		return repository.ErrBindingNotFound
	}
	r.store.bindings[binding.ID] = copyBinding(binding)

	return nil
}

func (r *fakeBindingRepository) FindActiveBindingByProfessional(_ context.Context, professionalID uuid.UUID) (*entity.Binding, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, b := range r.store.bindings {
		if b.ProfessionalID == professionalID && b.IsActive {
			return copyBinding(b), nil
		}
	}

	return nil, repository.ErrBindingNotFound
}

func (r *fakeBindingRepository) FindActiveBindingsByHub(_ context.Context, hubID uuid.UUID) ([]*entity.Binding, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var bindings []*entity.Binding
	for _, b := range r.store.bindings {
		if b.HubID == hubID && b.IsActive {
			bindings = append(bindings, copyBinding(b))
		}
	}

	return bindings, nil
}

func (r *fakeBindingRepository) DeactivateBinding(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bindings[id]
	if !ok {
		return repository.ErrBindingNotFound
	}
	b.IsActive = false

	return nil
}

type fakeQueueRepository struct {
	store *memStore
}

func (r *fakeQueueRepository) CreateEntry(_ context.Context, entry *entity.QueueEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.entries[entry.ID] = copyEntry(entry)

	return nil
}

func (r *fakeQueueRepository) UpdateEntry(_ context.Context, entry *entity.QueueEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.entries[entry.ID]; !ok {
		return repository.ErrEntryNotFound
	}
	r.store.entries[entry.ID] = copyEntry(entry)

	return nil
}

func (r *fakeQueueRepository) DeleteEntry(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.entries[id]; !ok {
		return repository.ErrEntryNotFound
	}
	delete(r.store.entries, id)

	return nil
}

func (r *fakeQueueRepository) FindEntryByProfessional(_ context.Context, professionalID uuid.UUID) (*entity.QueueEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, e := range r.store.entries {
		if e.ProfessionalID == professionalID {
			return copyEntry(e), nil
		}
	}

	return nil, repository.ErrEntryNotFound
}

func (r *fakeQueueRepository) FindWaitingByHub(_ context.Context, hubID uuid.UUID) ([]*entity.QueueEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var entries []*entity.QueueEntry
	for _, e := range r.store.entries {
		if e.HubID == hubID && e.Status == entity.QueueStatusWaiting {
			entries = append(entries, copyEntry(e))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return *entries[i].Position < *entries[j].Position })

	return entries, nil
}

func (r *fakeQueueRepository) FindEnRouteByHub(_ context.Context, hubID uuid.UUID) ([]*entity.QueueEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var entries []*entity.QueueEntry
	for _, e := range r.store.entries {
		if e.HubID == hubID && e.Status == entity.QueueStatusEnRoute {
			entries = append(entries, copyEntry(e))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DispatchedAt.Before(*entries[j].DispatchedAt)
	})

	return entries, nil
}

func (r *fakeQueueRepository) CountEntriesByHub(_ context.Context, hubID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, e := range r.store.entries {
		if e.HubID == hubID {
			count++
		}
	}

	return count, nil
}

func (r *fakeQueueRepository) MaxWaitingPosition(_ context.Context, hubID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	maxPos := 0
	for _, e := range r.store.entries {
		if e.HubID == hubID && e.Status == entity.QueueStatusWaiting && e.Position != nil && *e.Position > maxPos {
			maxPos = *e.Position
		}
	}

	return maxPos, nil
}

func (r *fakeQueueRepository) MinWaitingPosition(_ context.Context, hubID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	minPos := 0
	for _, e := range r.store.entries {
		if e.HubID == hubID && e.Status == entity.QueueStatusWaiting && e.Position != nil {
			if minPos == 0 || *e.Position < minPos {
				minPos = *e.Position
			}
		}
	}

	return minPos, nil
}

func (r *fakeQueueRepository) LockHubQueue(_ context.Context, hubID uuid.UUID) error {
	r.store.mu.Lock()
	hook := r.store.onLock
	r.store.onLock = nil
	r.store.mu.Unlock()

	if hook != nil {
		hook(hubID)
	}

	return nil
}

func (r *fakeQueueRepository) ShiftPositionsDown(_ context.Context, hubID uuid.UUID, abovePosition int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, e := range r.store.entries {
		if e.HubID == hubID && e.Status == entity.QueueStatusWaiting && e.Position != nil && *e.Position > abovePosition {
			*e.Position--
		}
	}

	return nil
}

func (r *fakeQueueRepository) ShiftPositionsUp(_ context.Context, hubID uuid.UUID, fromPosition int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, e := range r.store.entries {
		if e.HubID == hubID && e.Status == entity.QueueStatusWaiting && e.Position != nil && *e.Position >= fromPosition {
			*e.Position++
		}
	}

	return nil
}

type fakeHistoryRepository struct {
	store *memStore
}

func (r *fakeHistoryRepository) AppendEvent(_ context.Context, event *entity.HistoryEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	copied := *event
	r.store.history = append(r.store.history, &copied)

	return nil
}

func (r *fakeHistoryRepository) FindEventsByHub(_ context.Context, hubID uuid.UUID, from, to time.Time) ([]*entity.HistoryEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var events []*entity.HistoryEvent
	for _, e := range r.store.history {
		if e.HubID == hubID && !e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			copied := *e
			events = append(events, &copied)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })

	return events, nil
}

type fakeNotificationRepository struct {
	store *memStore
}

func (r *fakeNotificationRepository) UpsertNotification(_ context.Context, notification *entity.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.notifications[notification.ProfessionalID] = copyNotification(notification)

	return nil
}

func (r *fakeNotificationRepository) DrainUnread(_ context.Context, professionalID uuid.UUID) (*entity.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.store.notifications[professionalID]
	if !ok || n.Read {
		return nil, repository.ErrNotificationNotFound
	}
	n.Read = true

	return copyNotification(n), nil
}

func (r *fakeNotificationRepository) MarkRead(_ context.Context, professionalID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.store.notifications[professionalID]
	if !ok {
		return repository.ErrNotificationNotFound
	}
	n.Read = true

	return nil
}

// flatGeofence approximates distance on a flat grid, one degree of latitude
// or longitude being ~111320 m. Good enough for the short spans the tests
// use and fully deterministic.
type flatGeofence struct{}

func (flatGeofence) Distance(a, b orb.Point) float64 {
	const metersPerDegree = 111320.0

	return math.Hypot(a[0]-b[0], a[1]-b[1]) * metersPerDegree
}

func (g flatGeofence) WithinRadius(checkin orb.Point, hub *entity.Hub) (bool, float64) {
	distance := g.Distance(checkin, orb.Point{hub.Longitude, hub.Latitude})

	return distance <= hub.RadiusMeters, distance
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*service.QueueEvent
}

func (p *fakePublisher) PublishQueueEvent(_ context.Context, event *service.QueueEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error {
	return nil
}

func (p *fakePublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	actions := make([]string, 0, len(p.events))
	for _, e := range p.events {
		actions = append(actions, e.Action)
	}

	return actions
}

type auditRecord struct {
	Action   string
	Category string
	EntityID string
	Metadata map[string]any
}

type fakeAuditSink struct {
	mu      sync.Mutex
	records []auditRecord
}

func (s *fakeAuditSink) Record(_ context.Context, action, category, _, entityID string, metadata map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, auditRecord{
		Action:   action,
		Category: category,
		EntityID: entityID,
		Metadata: metadata,
	})
}
