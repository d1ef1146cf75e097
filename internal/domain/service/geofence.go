// Package service defines collaborator contracts consumed by the use case layer.
package service

import (
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

	"github.com/paulmach/orb"
)

// GeofenceValidator measures great-circle distances and decides whether a
// check-in point falls inside a hub's admission radius. Implementations are
// pure and have no side effects.
type GeofenceValidator interface {
	// Distance returns the great-circle distance between two points in meters.
	Distance(a, b orb.Point) float64

	// WithinRadius reports whether the check-in point lies within the hub's
	// admission radius, along with the measured distance in meters.
	WithinRadius(checkin orb.Point, hub *entity.Hub) (bool, float64)
}
