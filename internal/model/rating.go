package model

import "time"

// RatingRecord is the single personal rating kept per business. The store
// guarantees at most one record per BusinessID; resubmissions update the
// rating, review and UpdatedAt in place while VisitedDate keeps the time of
// the first submission.
type RatingRecord struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id"`
	BusinessName string    `json:"business_name"`
	UserRating   int       `json:"user_rating"`
	UserReview   string    `json:"user_review"`
	VisitedDate  time.Time `json:"visited_date"`
	UpdatedAt    time.Time `json:"updated_at"`
}
