// Package geocode is the external geocoder used only as the locator's
// fallback when a query matches no office record.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/gentledental/siteapi/internal/domain"
	"github.com/gentledental/siteapi/internal/domain/geo"
)

// Client calls a Nominatim-style geocoding endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds geocoder settings.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewClient creates a geocoder client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type geocodeHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a free-text place query to coordinates.
// Returns domain.ErrLocationNotResolved when the service finds nothing and
// domain.ErrGeocodeUnavailable on transport or decoding failure.
func (c *Client) Geocode(ctx context.Context, query string) (geo.Coordinates, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("geocode request: %v: %w", err, domain.ErrGeocodeUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinates{}, fmt.Errorf("geocode status %d: %w", resp.StatusCode, domain.ErrGeocodeUnavailable)
	}

	var hits []geocodeHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return geo.Coordinates{}, fmt.Errorf("decode geocode response: %v: %w", err, domain.ErrGeocodeUnavailable)
	}
	if len(hits) == 0 {
		return geo.Coordinates{}, fmt.Errorf("no geocode match for %q: %w", query, domain.ErrLocationNotResolved)
	}

	lat, latErr := strconv.ParseFloat(hits[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(hits[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return geo.Coordinates{}, fmt.Errorf("malformed geocode coordinates: %w", domain.ErrGeocodeUnavailable)
	}

	coords := geo.Coordinates{Lat: lat, Lng: lng}
	if !coords.Valid() {
		return geo.Coordinates{}, fmt.Errorf("out-of-range geocode coordinates: %w", domain.ErrGeocodeUnavailable)
	}
	return coords, nil
}
