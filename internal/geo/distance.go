// Package geo provides great-circle distance and crude travel estimates.
package geo

import (
	"math"

	"github.com/amenity-labs/amenity-finder/internal/model"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the haversine great-circle distance between two points
// in kilometers. Always >= 0, and 0 when origin equals target. Inputs are
// not validated; out-of-range coordinates yield a meaningless but finite
// result.
func DistanceKm(origin, target model.Coordinates) float64 {
	dLat := toRadians(target.Latitude - origin.Latitude)
	dLon := toRadians(target.Longitude - origin.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(origin.Latitude))*math.Cos(toRadians(target.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
