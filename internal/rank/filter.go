package rank

import "github.com/amenity-labs/amenity-finder/internal/model"

// Matches reports whether a ranked result passes the user's filter criteria.
// An absent provider rating is treated as 0 for the MinRating check. Pure
// predicate; never fails.
func Matches(r model.RankedResult, c model.FilterCriteria) bool {
	if r.RatingValue() < c.MinRating {
		return false
	}
	if c.OpenNow && r.Status != model.StatusOpen {
		return false
	}
	if r.DistanceKm > c.MaxDistanceKm {
		return false
	}
	return true
}

// ApplyFilter returns the results that pass the criteria, in their existing
// rank order. Filtering never re-sorts.
func ApplyFilter(ranked []model.RankedResult, c model.FilterCriteria) []model.RankedResult {
	out := make([]model.RankedResult, 0, len(ranked))
	for _, r := range ranked {
		if Matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}
