package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amenity-labs/amenity-finder/internal/model"
)

func TestEstimateMinutes(t *testing.T) {
	// 50 km at 50 km/h is exactly one hour.
	assert.Equal(t, 60, EstimateMinutes(50))
	// Partial minutes round up.
	assert.Equal(t, 13, EstimateMinutes(10.5))
	assert.Equal(t, 0, EstimateMinutes(0))
}

func TestRouteOptions(t *testing.T) {
	origin := model.Coordinates{Latitude: 0, Longitude: 0}
	dest := model.Coordinates{Latitude: 0, Longitude: 0.45} // ~50 km

	opts := RouteOptions(origin, dest)
	require.Len(t, opts, 2)

	fastest, shortest := opts[0], opts[1]
	assert.Equal(t, "fastest", fastest.ID)
	assert.Equal(t, "shortest", shortest.ID)

	// Shortest trades distance for time.
	assert.Less(t, shortest.DistanceKm, fastest.DistanceKm)
	assert.GreaterOrEqual(t, shortest.TimeMinutes, fastest.TimeMinutes)
}

func TestRouteOptions_ZeroTrip(t *testing.T) {
	p := model.Coordinates{Latitude: 10, Longitude: 10}
	opts := RouteOptions(p, p)
	require.Len(t, opts, 2)
	assert.Equal(t, 0.0, opts[0].DistanceKm)
	assert.Equal(t, 0, opts[0].TimeMinutes)
}
