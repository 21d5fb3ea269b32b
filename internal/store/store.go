// Package store persists the per-business rating records.
package store

import (
	"context"

	"github.com/amenity-labs/amenity-finder/internal/model"
)

// Default pagination for ListRatings.
const (
	DefaultListLimit  = 50
	DefaultListOffset = 0
)

// Rating bounds accepted by UpsertRating.
const (
	MinUserRating = 1
	MaxUserRating = 5
)

// Store is the persistence interface for ratings. Each business holds at
// most one record; UpsertRating creates it on first submission and updates
// it in place afterwards.
type Store interface {
	// GetRating returns the record for a business, or nil when none exists.
	// Absence is not an error.
	GetRating(ctx context.Context, businessID string) (*model.RatingRecord, error)

	// UpsertRating validates its input, then atomically inserts or updates
	// the single record keyed by businessID. On update, UserRating,
	// UserReview, BusinessName and UpdatedAt change; VisitedDate keeps the
	// first submission's time.
	UpsertRating(ctx context.Context, businessID, businessName string, userRating int, userReview string) (*model.RatingRecord, error)

	// ListRatings returns records ordered by VisitedDate descending, i.e.
	// most recently first-rated first. An updated old rating does not move
	// to the top.
	ListRatings(ctx context.Context, limit, offset int) ([]model.RatingRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// normalizeListArgs applies defaults and rejects negative pagination values.
func normalizeListArgs(limit, offset int) (int, int, error) {
	if limit < 0 {
		return 0, 0, &ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if offset < 0 {
		return 0, 0, &ValidationError{Field: "offset", Reason: "must not be negative"}
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	return limit, offset, nil
}

// validateUpsertArgs rejects malformed input before any write happens.
func validateUpsertArgs(businessID, businessName string, userRating int) error {
	if businessID == "" {
		return &ValidationError{Field: "businessId", Reason: "is required"}
	}
	if businessName == "" {
		return &ValidationError{Field: "businessName", Reason: "is required"}
	}
	if userRating < MinUserRating || userRating > MaxUserRating {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	return nil
}
