package repository

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/errors"

	"github.com/google/uuid"
)

// ErrBindingNotFound is returned when a professional has no matching binding.
var ErrBindingNotFound = errors.New("binding not found")

// BindingRepository persists the professional-to-hub assignments.
type BindingRepository interface {
	// CreateBinding persists a new binding.
	CreateBinding(ctx context.Context, binding *entity.Binding) error

	// UpdateBinding saves changes to an existing binding.
	UpdateBinding(ctx context.Context, binding *entity.Binding) error

	// FindActiveBindingByProfessional retrieves the professional's single
	// active binding, if any.
	FindActiveBindingByProfessional(ctx context.Context, professionalID uuid.UUID) (*entity.Binding, error)

	// FindActiveBindingsByHub retrieves all active bindings for a hub.
	FindActiveBindingsByHub(ctx context.Context, hubID uuid.UUID) ([]*entity.Binding, error)

	// DeactivateBinding marks a binding inactive.
	DeactivateBinding(ctx context.Context, id uuid.UUID) error
}
