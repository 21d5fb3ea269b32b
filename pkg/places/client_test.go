package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amenity-labs/amenity-finder/internal/resilience"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestTextSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places:searchText", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Contains(t, r.Header.Get("X-Goog-FieldMask"), "places.location")

		var body textSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "coffee near me", body.TextQuery)
		require.NotNil(t, body.LocationBias)
		assert.InDelta(t, 40.7128, body.LocationBias.Circle.Center.Latitude, 0.001)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TextSearchResponse{
			Places: []Place{
				{
					ID:              "place-1",
					DisplayName:     DisplayName{Text: "Good Beans"},
					Rating:          floatPtr(4.5),
					UserRatingCount: intPtr(127),
					Location:        &LatLng{Latitude: 40.71, Longitude: -74.0},
					BusinessStatus:  "OPERATIONAL",
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.TextSearch(context.Background(), "coffee near me", 40.7128, -74.0060, 50)

	require.NoError(t, err)
	require.Len(t, resp.Places, 1)
	p := resp.Places[0]
	assert.Equal(t, "Good Beans", p.DisplayName.Text)
	require.NotNil(t, p.Rating)
	assert.InDelta(t, 4.5, *p.Rating, 0.001)
	require.NotNil(t, p.UserRatingCount)
	assert.Equal(t, 127, *p.UserRatingCount)
	require.NotNil(t, p.Location)
	assert.Equal(t, "OPERATIONAL", p.BusinessStatus)
}

func TestTextSearch_OptionalFieldsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// A place with no rating, review count or coordinates.
		_, _ = w.Write([]byte(`{"places":[{"id":"sparse-1","displayName":{"text":"Sparse Diner"}}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.TextSearch(context.Background(), "diner", 0, 0, 10)

	require.NoError(t, err)
	require.Len(t, resp.Places, 1)
	p := resp.Places[0]
	assert.Nil(t, p.Rating)
	assert.Nil(t, p.UserRatingCount)
	assert.Nil(t, p.Location)
	assert.Empty(t, p.BusinessStatus)
}

func TestTextSearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "invalid API key"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	resp, err := client.TextSearch(context.Background(), "test query", 0, 0, 10)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "403")
}

func TestTextSearch_RetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"places": [{"id": "p1", "displayName": {"text": "Cafe"}}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient("test-key",
		WithBaseURL(srv.URL),
		WithRetry(resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond}),
	)
	resp, err := client.TextSearch(context.Background(), "coffee", 0, 0, 10)

	require.NoError(t, err)
	require.Len(t, resp.Places, 1)
	assert.Equal(t, 3, calls)
}

func TestTextSearch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.TextSearch(ctx, "test query", 0, 0, 10)
	assert.Error(t, err)
}

func TestAutocomplete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json", r.URL.Path)
		assert.Equal(t, "piz", r.URL.Query().Get("input"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "5000", r.URL.Query().Get("radius"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(autocompleteResponse{
			Status: "OK",
			Predictions: []Prediction{
				{Description: "pizza", PlaceID: "p1"},
				{Description: "pizzeria", PlaceID: "p2"},
				{Description: "pizza delivery", PlaceID: "p3"},
				{Description: "pizza oven store", PlaceID: "p4"},
				{Description: "pizza museum", PlaceID: "p5"},
				{Description: "pizza island", PlaceID: "p6"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithAutocompleteURL(srv.URL))
	preds, err := client.Autocomplete(context.Background(), "piz", 40.7, -74.0, 5000)

	require.NoError(t, err)
	// Capped at five suggestions.
	require.Len(t, preds, 5)
	assert.Equal(t, "pizza", preds[0].Description)
}

func TestAutocomplete_EmptyInputSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected for empty input")
	}))
	defer srv.Close()

	client := NewClient("test-key", WithAutocompleteURL(srv.URL))
	preds, err := client.Autocomplete(context.Background(), "", 40.7, -74.0, 5000)

	require.NoError(t, err)
	assert.Nil(t, preds)
}

func TestRateLimit_AppliesWithoutBlocking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"places":[]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(100))
	for i := 0; i < 3; i++ {
		_, err := client.TextSearch(context.Background(), "q", 0, 0, 1)
		require.NoError(t, err)
	}
}
