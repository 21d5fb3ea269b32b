// Package search orchestrates the provider query, ranking and filtering that
// produce the displayed result list.
package search

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/amenity-labs/amenity-finder/internal/config"
	"github.com/amenity-labs/amenity-finder/internal/model"
	"github.com/amenity-labs/amenity-finder/internal/rank"
	"github.com/amenity-labs/amenity-finder/pkg/places"
)

// Service runs place searches and applies the ranking pipeline.
type Service struct {
	client places.Client
	cfg    config.SearchConfig
}

// NewService creates a search service.
func NewService(client places.Client, cfg config.SearchConfig) *Service {
	return &Service{client: client, cfg: cfg}
}

// Search queries the provider for places near the origin, ranks them and
// applies the filter criteria. A zero MaxDistanceKm is replaced with the
// configured ceiling. Provider failures surface as infrastructure errors;
// an empty result set does not.
func (s *Service) Search(ctx context.Context, query string, origin model.Coordinates, criteria model.FilterCriteria) ([]model.RankedResult, error) {
	resp, err := s.client.TextSearch(ctx, query+" near me", origin.Latitude, origin.Longitude, s.cfg.ResultLimit)
	if err != nil {
		return nil, eris.Wrap(err, "search: provider query")
	}

	records := make([]model.PlaceRecord, 0, len(resp.Places))
	for _, p := range resp.Places {
		records = append(records, toPlaceRecord(p))
	}

	if criteria.MaxDistanceKm == 0 {
		criteria.MaxDistanceKm = s.cfg.MaxDistanceKm
	}

	ranked := rank.Rank(records, origin)
	filtered := rank.ApplyFilter(ranked, criteria)

	zap.L().Info("search complete",
		zap.String("query", query),
		zap.Int("raw", len(records)),
		zap.Int("ranked", len(ranked)),
		zap.Int("displayed", len(filtered)),
	)

	return filtered, nil
}

// Suggest returns autocomplete predictions for a partial query near the
// origin.
func (s *Service) Suggest(ctx context.Context, input string, origin model.Coordinates) ([]places.Prediction, error) {
	preds, err := s.client.Autocomplete(ctx, input, origin.Latitude, origin.Longitude, 5000)
	if err != nil {
		return nil, eris.Wrap(err, "search: autocomplete")
	}
	return preds, nil
}

// toPlaceRecord maps a provider place onto the internal record shape,
// keeping absent optional fields absent.
func toPlaceRecord(p places.Place) model.PlaceRecord {
	rec := model.PlaceRecord{
		BusinessID: p.ID,
		Name:       p.DisplayName.Text,
		Rating:     p.Rating,
		Status:     mapStatus(p.BusinessStatus),
		Address:    p.Address,
		Phone:      p.Phone,
		Website:    p.WebsiteURI,
	}
	if p.UserRatingCount != nil {
		count := *p.UserRatingCount
		rec.ReviewCount = &count
	}
	if p.Location != nil {
		rec.Location = &model.Coordinates{
			Latitude:  p.Location.Latitude,
			Longitude: p.Location.Longitude,
		}
	}
	if len(p.Photos) > 0 {
		rec.PhotoURL = p.Photos[0].Name
	}
	return rec
}

func mapStatus(providerStatus string) model.BusinessStatus {
	switch providerStatus {
	case "OPERATIONAL", "OPEN":
		return model.StatusOpen
	case "CLOSED_TEMPORARILY", "CLOSED_PERMANENTLY", "CLOSED":
		return model.StatusClosed
	default:
		return model.StatusUnknown
	}
}
