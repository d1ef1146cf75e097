// Package repository defines the persistence interfaces consumed by the use case layer.
package repository

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/errors"

	"github.com/google/uuid"
)

// ErrHubNotFound is returned when no hub matches the given identifier.
var ErrHubNotFound = errors.New("hub not found")

// HubRepository persists Hub entities.
type HubRepository interface {
	// CreateHub persists a new hub.
	CreateHub(ctx context.Context, hub *entity.Hub) error

	// UpdateHub saves changes to an existing hub.
	UpdateHub(ctx context.Context, hub *entity.Hub) error

	// DeleteHub removes a hub (soft delete). Callers must ensure no queue
	// entries reference the hub before deleting.
	DeleteHub(ctx context.Context, id uuid.UUID) error

	// FindHubByID retrieves a hub by its unique ID.
	FindHubByID(ctx context.Context, id uuid.UUID) (*entity.Hub, error)

	// ListHubs retrieves all hubs, optionally restricted to active ones.
	ListHubs(ctx context.Context, onlyActive bool) ([]*entity.Hub, error)
}
