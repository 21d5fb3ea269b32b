package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

// maxPredictions caps how many autocomplete suggestions are returned.
const maxPredictions = 5

// Prediction is a single autocomplete suggestion.
type Prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

type autocompleteResponse struct {
	Predictions []Prediction `json:"predictions"`
	Status      string       `json:"status"`
}

// Autocomplete returns up to five suggestions for a partial query, biased
// around the given coordinate. An empty input yields no suggestions and no
// request.
func (c *httpClient) Autocomplete(ctx context.Context, input string, lat, lng float64, radiusMeters int) ([]Prediction, error) {
	if input == "" {
		return nil, nil
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	base := c.autocompleteURL
	if base == "" {
		base = "https://maps.googleapis.com/maps/api/place/autocomplete"
	}

	q := url.Values{}
	q.Set("input", input)
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/json?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: create autocomplete request")
	}

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result autocompleteResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal autocomplete response")
	}

	if len(result.Predictions) > maxPredictions {
		result.Predictions = result.Predictions[:maxPredictions]
	}
	return result.Predictions, nil
}
