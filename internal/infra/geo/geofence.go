// Package geo implements the geofence check used to gate queue check-ins.
package geo

import (
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/service"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

type haversineValidator struct{}

// NewGeofenceValidator returns a validator backed by the haversine
// great-circle distance. Accurate to well under a meter at hub-radius
// scales, which is far below GPS noise.
func NewGeofenceValidator() service.GeofenceValidator {
	return haversineValidator{}
}

func (haversineValidator) Distance(a, b orb.Point) float64 {
	return orbgeo.DistanceHaversine(a, b)
}

func (v haversineValidator) WithinRadius(checkin orb.Point, hub *entity.Hub) (bool, float64) {
	center := orb.Point{hub.Longitude, hub.Latitude}
	distance := v.Distance(checkin, center)

	return distance <= hub.RadiusMeters, distance
}
