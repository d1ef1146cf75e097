package entity

import (
	"time"

	"github.com/google/uuid"
)

// Binding assigns a delivery professional to a hub. A professional has at
// most one active binding at any time.
type Binding struct {
	ID             uuid.UUID `json:"id"`              // The Global Unique Identifier (GUID) for the binding.
	HubID          uuid.UUID `json:"hub_id"`          // The hub the professional is assigned to.
	ProfessionalID uuid.UUID `json:"professional_id"` // The professional being assigned.
	DisplayName    string    `json:"display_name"`    // Display name snapshot used by queue listings.
	IsActive       bool      `json:"is_active"`       // Indicates if this binding is active.
	CreatedAt      time.Time `json:"created_at"`      // Timestamp of when the binding was created.
	UpdatedAt      time.Time `json:"updated_at"`      // Timestamp of the last modification.
}
