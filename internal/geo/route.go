package geo

import (
	"math"

	"github.com/amenity-labs/amenity-finder/internal/model"
)

// averageSpeedKmh is the assumed travel speed for the time estimate. There is
// no road-network routing here; estimates are straight-line only.
const averageSpeedKmh = 50

// RouteOption is a synthetic route alternative derived from the straight-line
// distance between two points.
type RouteOption struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	DistanceKm  float64 `json:"distance_km"`
	TimeMinutes int     `json:"time_minutes"`
}

// EstimateMinutes returns the rough travel time for a distance at the assumed
// average speed, rounded up to whole minutes.
func EstimateMinutes(distanceKm float64) int {
	return int(math.Ceil(distanceKm / averageSpeedKmh * 60))
}

// RouteOptions returns the two synthetic alternatives offered for a trip: a
// "fastest" option at the straight-line estimate and a "shortest" option that
// trades 5% distance for 10% more time.
func RouteOptions(origin, destination model.Coordinates) []RouteOption {
	distance := DistanceKm(origin, destination)
	minutes := EstimateMinutes(distance)

	return []RouteOption{
		{
			ID:          "fastest",
			Label:       "Fastest",
			DistanceKm:  round1(distance),
			TimeMinutes: minutes,
		},
		{
			ID:          "shortest",
			Label:       "Shortest",
			DistanceKm:  round1(distance * 0.95),
			TimeMinutes: int(math.Ceil(float64(minutes) * 1.1)),
		},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
