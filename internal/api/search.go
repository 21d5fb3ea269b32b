package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/amenity-labs/amenity-finder/internal/geo"
	"github.com/amenity-labs/amenity-finder/internal/model"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	origin, ok := queryCoordinates(w, r, "lat", "lng")
	if !ok {
		return
	}

	criteria := model.FilterCriteria{}
	if raw := r.URL.Query().Get("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "minRating must be a number")
			return
		}
		criteria.MinRating = v
	}
	if raw := r.URL.Query().Get("maxDistanceKm"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "maxDistanceKm must be a number")
			return
		}
		criteria.MaxDistanceKm = v
	}
	criteria.OpenNow = r.URL.Query().Get("openNow") == "true"

	results, err := s.search.Search(r.Context(), query, origin, criteria)
	if err != nil {
		zap.L().Error("search", zap.Error(err), zap.String("query", query))
		writeError(w, http.StatusBadGateway, "search provider unavailable")
		return
	}

	if results == nil {
		results = []model.RankedResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results, "count": len(results)})
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	origin, ok := queryCoordinates(w, r, "lat", "lng")
	if !ok {
		return
	}

	predictions, err := s.search.Suggest(r.Context(), r.URL.Query().Get("input"), origin)
	if err != nil {
		zap.L().Error("autocomplete", zap.Error(err))
		writeError(w, http.StatusBadGateway, "autocomplete provider unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"predictions": predictions})
}

func (s *Server) handleDirections(w http.ResponseWriter, r *http.Request) {
	origin, ok := queryCoordinates(w, r, "fromLat", "fromLng")
	if !ok {
		return
	}
	destination, ok := queryCoordinates(w, r, "toLat", "toLng")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"distance_km": geo.DistanceKm(origin, destination),
		"routes":      geo.RouteOptions(origin, destination),
	})
}

// queryCoordinates parses a required lat/lng pair from the query string. On a
// missing or malformed value it writes a 400 response and reports ok=false.
func queryCoordinates(w http.ResponseWriter, r *http.Request, latName, lngName string) (model.Coordinates, bool) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get(latName), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, latName+" must be a number")
		return model.Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get(lngName), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, lngName+" must be a number")
		return model.Coordinates{}, false
	}
	return model.Coordinates{Latitude: lat, Longitude: lng}, true
}
