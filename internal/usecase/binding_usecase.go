package usecase

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

	"github.com/google/uuid"
)

// BindInput carries the fields for binding a professional to a hub.
type BindInput struct {
	HubID          uuid.UUID
	ProfessionalID uuid.UUID
	DisplayName    string
}

// BindingUsecase manages professional-to-hub assignments. Bind fails with
// ALREADY_BOUND when the professional is actively bound to a different hub;
// rebinding is a distinct, explicit operation and never happens implicitly.
type BindingUsecase interface {
	Bind(ctx context.Context, actor entity.Actor, input *BindInput) (*entity.Binding, error)
	// Unbind deactivates the professional's binding and removes any live
	// queue entry they hold.
	Unbind(ctx context.Context, actor entity.Actor, professionalID uuid.UUID) error
	// Rebind atomically releases the current binding and creates a new one.
	Rebind(ctx context.Context, actor entity.Actor, input *BindInput) (*entity.Binding, error)
	FindForProfessional(ctx context.Context, professionalID uuid.UUID) (*entity.Binding, error)
}
