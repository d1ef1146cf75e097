// Package usecase defines the application's use case interfaces and their
// input/output structures.
package usecase

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateHubInput carries the fields for creating a hub.
type CreateHubInput struct {
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
}

// UpdateHubInput carries the optional fields for updating a hub.
type UpdateHubInput struct {
	Name         *string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters *float64
	IsActive     *bool
}

// HubUsecase manages hub registration. All operations are admin-only;
// callers pass the acting admin so the policy check and audit trail live in
// one place.
type HubUsecase interface {
	CreateHub(ctx context.Context, actor entity.Actor, input *CreateHubInput) (*entity.Hub, error)
	UpdateHub(ctx context.Context, actor entity.Actor, hubID uuid.UUID, input *UpdateHubInput) (*entity.Hub, error)
	// DeleteHub removes a hub. It fails while any queue entry references the
	// hub; entries are never cascaded away.
	DeleteHub(ctx context.Context, actor entity.Actor, hubID uuid.UUID) error
	GetHub(ctx context.Context, hubID uuid.UUID) (*entity.Hub, error)
	ListHubs(ctx context.Context, onlyActive bool) ([]*entity.Hub, error)
}
