// Package places talks to the external map provider. It turns free-text
// queries into candidate places; everything else about maps (tiles, markers,
// viewport) belongs to the UI.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// Provider supplies place search results.
type Provider interface {
	SearchPlaces(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// DefaultBaseURL is the Google Maps Platform web service root.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

// searchFields are the Find Place fields the UI shows in its details panel.
var searchFields = []string{
	"name", "geometry", "place_id", "formatted_address", "rating", "user_ratings_total",
}

// GoogleClient is a Provider backed by the Places "Find Place From Text" API.
type GoogleClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// GoogleOption customizes a GoogleClient.
type GoogleOption func(*GoogleClient)

// WithBaseURL points the client at a different API root (tests use httptest).
func WithBaseURL(u string) GoogleOption {
	return func(c *GoogleClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) GoogleOption {
	return func(c *GoogleClient) { c.http = h }
}

// NewGoogleClient returns a client authenticated with apiKey.
func NewGoogleClient(apiKey string, opts ...GoogleOption) *GoogleClient {
	c := &GoogleClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// findPlaceResponse mirrors the JSON body of findplacefromtext.
type findPlaceResponse struct {
	Candidates   []placeResult `json:"candidates"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeResult struct {
	Name             string    `json:"name"`
	FormattedAddress string    `json:"formatted_address"`
	PlaceID          string    `json:"place_id"`
	Geometry         *geometry `json:"geometry,omitempty"`
	Rating           *float64  `json:"rating,omitempty"`
	UserRatingsTotal *int      `json:"user_ratings_total,omitempty"`
}

type geometry struct {
	Location *latLng `json:"location,omitempty"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchPlaces runs a text query. A ZERO_RESULTS status yields an empty,
// non-nil slice; any other non-OK status is an error. Candidates without a
// location cannot be pinned on a map and are skipped.
func (c *GoogleClient) SearchPlaces(ctx context.Context, query string) ([]domain.SearchResult, error) {
	q := url.Values{}
	q.Set("input", query)
	q.Set("inputtype", "textquery")
	q.Set("fields", strings.Join(searchFields, ","))
	q.Set("key", c.apiKey)

	endpoint := c.baseURL + "/place/findplacefromtext/json?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("places.GoogleClient.SearchPlaces: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places.GoogleClient.SearchPlaces: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places.GoogleClient.SearchPlaces: unexpected HTTP status %d", resp.StatusCode)
	}

	var body findPlaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("places.GoogleClient.SearchPlaces: decode: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []domain.SearchResult{}, nil
	default:
		return nil, fmt.Errorf("places.GoogleClient.SearchPlaces: status %s: %s", body.Status, body.ErrorMessage)
	}

	out := make([]domain.SearchResult, 0, len(body.Candidates))
	for _, p := range body.Candidates {
		if p.Geometry == nil || p.Geometry.Location == nil {
			continue
		}
		r := domain.SearchResult{
			PlaceID:  p.PlaceID,
			Name:     p.Name,
			Address:  p.FormattedAddress,
			Location: domain.LatLng{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
		}
		if p.Rating != nil {
			r.Rating = *p.Rating
		}
		if p.UserRatingsTotal != nil {
			r.UserRatingsTotal = *p.UserRatingsTotal
		}
		out = append(out, r)
	}
	return out, nil
}
