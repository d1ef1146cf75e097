package geo

import (
	"testing"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

// Praça da Sé, São Paulo.
const (
	hubLat = -23.5505
	hubLon = -46.6333
)

func testHub(radius float64) *entity.Hub {
	return &entity.Hub{
		Name:         "Central Sé",
		Latitude:     hubLat,
		Longitude:    hubLon,
		RadiusMeters: radius,
	}
}

func TestWithinRadius(t *testing.T) {
	validator := NewGeofenceValidator()

	t.Run("checkin at hub center", func(t *testing.T) {
		within, distance := validator.WithinRadius(orb.Point{hubLon, hubLat}, testHub(100))

		assert.True(t, within)
		assert.Zero(t, distance)
	})

	t.Run("checkin inside radius", func(t *testing.T) {
		// ~55m north of the center.
		within, distance := validator.WithinRadius(orb.Point{hubLon, hubLat + 0.0005}, testHub(100))

		assert.True(t, within)
		assert.InDelta(t, 55, distance, 5)
	})

	t.Run("checkin outside radius", func(t *testing.T) {
		// ~1.1km east of the center.
		within, distance := validator.WithinRadius(orb.Point{hubLon + 0.011, hubLat}, testHub(100))

		assert.False(t, within)
		assert.Greater(t, distance, 1000.0)
	})

	t.Run("kilometre away from a 900m hub reports both figures", func(t *testing.T) {
		// ~1 km north of the center of a 900 m hub. The caller surfaces the
		// measured distance next to the allowed radius, so the returned
		// distance must be the real figure, not just a boolean.
		hub := testHub(900)
		within, distance := validator.WithinRadius(orb.Point{hubLon, hubLat + 0.009}, hub)

		assert.False(t, within)
		assert.InDelta(t, 1000, distance, 10)
		assert.Greater(t, distance, hub.RadiusMeters)
	})

	t.Run("distance exactly at boundary is within", func(t *testing.T) {
		point := orb.Point{hubLon, hubLat + 0.0005}
		_, distance := validator.WithinRadius(point, testHub(1))

		within, _ := validator.WithinRadius(point, testHub(distance))
		assert.True(t, within)
	})
}

func TestDistanceSymmetry(t *testing.T) {
	validator := NewGeofenceValidator()

	a := orb.Point{hubLon, hubLat}
	b := orb.Point{-46.64, -23.56}

	assert.InDelta(t, validator.Distance(a, b), validator.Distance(b, a), 0.001)
}
