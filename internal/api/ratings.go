package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/amenity-labs/amenity-finder/internal/model"
	"github.com/amenity-labs/amenity-finder/internal/store"
)

type createRatingRequest struct {
	BusinessID   string `json:"businessId"`
	BusinessName string `json:"businessName"`
	Rating       int    `json:"rating"`
	Review       string `json:"review"`
}

func (s *Server) handleCreateRating(w http.ResponseWriter, r *http.Request) {
	var req createRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rating, err := s.store.UpsertRating(r.Context(), req.BusinessID, req.BusinessName, req.Rating, req.Review)
	if err != nil {
		if store.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		zap.L().Error("upsert rating", zap.Error(err), zap.String("business_id", req.BusinessID))
		writeError(w, http.StatusInternalServerError, "failed to save rating")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "rating": rating})
}

func (s *Server) handleGetRating(w http.ResponseWriter, r *http.Request) {
	businessID := r.URL.Query().Get("businessId")
	if businessID == "" {
		writeError(w, http.StatusBadRequest, "businessId is required")
		return
	}

	rating, err := s.store.GetRating(r.Context(), businessID)
	if err != nil {
		zap.L().Error("get rating", zap.Error(err), zap.String("business_id", businessID))
		writeError(w, http.StatusInternalServerError, "failed to load rating")
		return
	}

	// Absent ratings are a normal outcome, not an error.
	writeJSON(w, http.StatusOK, map[string]any{"rating": rating})
}

func (s *Server) handleListRatings(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset", 0)
	if !ok {
		return
	}

	ratings, err := s.store.ListRatings(r.Context(), limit, offset)
	if err != nil {
		if store.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		zap.L().Error("list ratings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list ratings")
		return
	}

	if ratings == nil {
		ratings = []model.RatingRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ratings": ratings, "count": len(ratings)})
}

// queryInt parses an optional integer query parameter. On a malformed value it
// writes a 400 response and reports ok=false.
func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}
