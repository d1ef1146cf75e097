// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Hub represents a physical staging location where delivery professionals
// wait to be dispatched.
type Hub struct {
	ID           uuid.UUID `json:"id"`            // The Global Unique Identifier (GUID) for the hub.
	Name         string    `json:"name"`          // Human-readable hub name shown to professionals.
	Address      string    `json:"address"`       // Street address of the hub.
	Latitude     float64   `json:"latitude"`      // Latitude of the hub center.
	Longitude    float64   `json:"longitude"`     // Longitude of the hub center.
	RadiusMeters float64   `json:"radius_meters"` // Admission radius in meters around the hub center.
	IsActive     bool      `json:"is_active"`     // Indicates if the hub currently accepts check-ins.
	CreatedAt    time.Time `json:"created_at"`    // Timestamp of when the hub was created.
	UpdatedAt    time.Time `json:"updated_at"`    // Timestamp of the last modification.
}
