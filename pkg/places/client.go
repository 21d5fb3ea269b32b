// Package places is a thin client for the place-search provider. It exposes
// text search near a coordinate and query autocomplete; ranking and filtering
// of the returned records happen elsewhere.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/amenity-labs/amenity-finder/internal/resilience"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

// Client performs place-search provider operations.
type Client interface {
	TextSearch(ctx context.Context, query string, lat, lng float64, maxResults int) (*TextSearchResponse, error)
	Autocomplete(ctx context.Context, input string, lat, lng float64, radiusMeters int) ([]Prediction, error)
}

// TextSearchResponse is the response from a text search.
type TextSearchResponse struct {
	Places []Place `json:"places"`
}

// Place represents a place returned by the API. Rating, review count,
// location and status are optional; absent fields stay nil/empty rather
// than becoming zero values.
type Place struct {
	ID              string       `json:"id"`
	DisplayName     DisplayName  `json:"displayName"`
	Rating          *float64     `json:"rating,omitempty"`
	UserRatingCount *int         `json:"userRatingCount,omitempty"`
	Location        *LatLng      `json:"location,omitempty"`
	BusinessStatus  string       `json:"businessStatus,omitempty"`
	Address         string       `json:"formattedAddress,omitempty"`
	Phone           string       `json:"internationalPhoneNumber,omitempty"`
	WebsiteURI      string       `json:"websiteUri,omitempty"`
	Photos          []PhotoRef   `json:"photos,omitempty"`
}

// DisplayName holds the place's display name.
type DisplayName struct {
	Text string `json:"text"`
}

// LatLng is a provider coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PhotoRef is an opaque photo reference.
type PhotoRef struct {
	Name string `json:"name"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithAutocompleteURL overrides the autocomplete endpoint base URL.
func WithAutocompleteURL(url string) Option {
	return func(c *httpClient) {
		c.autocompleteURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRetry overrides the default retry behavior for provider calls.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

type httpClient struct {
	apiKey          string
	baseURL         string
	autocompleteURL string
	http            *http.Client
	limiter         *rate.Limiter
	retry           resilience.RetryConfig
}

// NewClient creates a place-search provider client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		retry: resilience.DefaultRetryConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type textSearchRequest struct {
	TextQuery    string        `json:"textQuery"`
	MaxResults   int           `json:"maxResultCount,omitempty"`
	LocationBias *locationBias `json:"locationBias,omitempty"`
}

type locationBias struct {
	Circle circleBias `json:"circle"`
}

type circleBias struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"`
}

const searchFieldMask = "places.id,places.displayName,places.rating,places.userRatingCount," +
	"places.location,places.businessStatus,places.formattedAddress," +
	"places.internationalPhoneNumber,places.websiteUri,places.photos"

// TextSearch runs a free-text place search biased around the given
// coordinate. Optional fields missing from a result are left absent, never
// treated as an error.
func (c *httpClient) TextSearch(ctx context.Context, query string, lat, lng float64, maxResults int) (*TextSearchResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(textSearchRequest{
		TextQuery:  query,
		MaxResults: maxResults,
		LocationBias: &locationBias{
			Circle: circleBias{
				Center: LatLng{Latitude: lat, Longitude: lng},
				Radius: 5000,
			},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "places: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result TextSearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal response")
	}

	return &result, nil
}

func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return eris.Wrap(c.limiter.Wait(ctx), "places: rate limit wait")
}

// do sends the request, retrying rate-limit and server-side failures with
// backoff. Requests built by net/http from an in-memory body carry GetBody,
// so the body can be replayed on each attempt.
func (c *httpClient) do(req *http.Request) ([]byte, error) {
	return resilience.DoVal(req.Context(), c.retry, func(ctx context.Context) ([]byte, error) {
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, eris.Wrap(err, "places: rewind request body")
			}
			req.Body = body
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "places: send request")
		}
		defer resp.Body.Close() //nolint:errcheck

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "places: read response")
		}

		if resp.StatusCode != http.StatusOK {
			err := eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(respBody))
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(err, resp.StatusCode)
			}
			return nil, err
		}
		return respBody, nil
	})
}
