// Package rank turns raw place-search results into a scored, ordered and
// filtered list. Everything here is pure computation; callers can invoke it
// from any goroutine without synchronization.
package rank

import "math"

// Component weights: rating dominates, popularity second, proximity third.
const (
	ratingWeight      = 50  // rating contributes 0..50
	reviewWeight      = 30  // review count contributes 0..30
	reviewSaturation  = 100 // review component saturates at this many reviews
	distanceWeight    = 20  // proximity contributes 0..20
	distanceDecayRate = 2   // points lost per km; zero at 10 km and beyond
)

// Score combines rating, review count and distance into a single 0..100 rank
// score. The value is used only for relative ordering, never displayed.
// Callers map absent rating/review data to zero before calling.
func Score(rating float64, reviewCount int, distanceKm float64) float64 {
	ratingScore := rating / 5 * ratingWeight
	reviewScore := math.Min(float64(reviewCount)/reviewSaturation*reviewWeight, reviewWeight)
	distanceScore := math.Max(distanceWeight-distanceKm*distanceDecayRate, 0)

	return ratingScore + reviewScore + distanceScore
}
