package model

// BusinessStatus represents the operational status reported by the place
// provider. Providers that omit the field map to StatusUnknown.
type BusinessStatus string

const (
	StatusOpen    BusinessStatus = "OPEN"
	StatusClosed  BusinessStatus = "CLOSED"
	StatusUnknown BusinessStatus = "UNKNOWN"
)

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceRecord is a single raw result from the place-search provider.
// Optional fields are pointers so that "provider did not report this" is
// distinguishable from a zero value.
type PlaceRecord struct {
	BusinessID  string         `json:"business_id"`
	Name        string         `json:"name"`
	Rating      *float64       `json:"rating,omitempty"`
	ReviewCount *int           `json:"review_count,omitempty"`
	Location    *Coordinates   `json:"location,omitempty"`
	Status      BusinessStatus `json:"status,omitempty"`
	Address     string         `json:"address,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	Website     string         `json:"website,omitempty"`
	PhotoURL    string         `json:"photo_url,omitempty"`
}

// RatingValue returns the provider rating, or 0 when absent.
func (p PlaceRecord) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// ReviewCountValue returns the provider review count, or 0 when absent.
func (p PlaceRecord) ReviewCountValue() int {
	if p.ReviewCount == nil {
		return 0
	}
	return *p.ReviewCount
}

// RankedResult is a PlaceRecord with the derived distance and rank score
// attached. Both fields are computed once per ranking pass and only change
// when the origin or the raw result set changes.
type RankedResult struct {
	PlaceRecord
	DistanceKm float64 `json:"distance_km"`
	RankScore  float64 `json:"rank_score"`
}

// FilterCriteria is the set of user-selected filter predicates applied to a
// ranked list. Zero value means "no filtering" apart from MaxDistanceKm,
// which callers must set to their chosen ceiling.
type FilterCriteria struct {
	MinRating     float64 `json:"min_rating"`
	OpenNow       bool    `json:"open_now"`
	MaxDistanceKm float64 `json:"max_distance_km"`
}
