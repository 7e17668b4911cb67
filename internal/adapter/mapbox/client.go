// Package mapbox resolves coordinates to US state codes using the
// Mapbox Geocoding API. It is the engine's external region-resolution
// collaborator: the engine only ever sees the resulting region code.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
	"github.com/couchcryptid/pfas-riskscope/internal/observability"
)

// Client implements domain.RegionLocator using the Mapbox Geocoding API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox region-lookup client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/geocoding/v5/mapbox.places",
		metrics: metrics,
		logger:  logger,
	}
}

// LocateRegion reverse-geocodes a coordinate to a USPS state code.
// Returns an empty region when Mapbox cannot place the point in a US
// state (e.g. offshore coordinates).
func (c *Client) LocateRegion(ctx context.Context, lat, lon float64) (domain.Region, error) {
	// Mapbox uses lon,lat order.
	coord := fmt.Sprintf("%.6f,%.6f", lon, lat)
	u := fmt.Sprintf("%s/%s.json", c.baseURL, coord)
	params := url.Values{
		"access_token": {c.token},
		"limit":        {"1"},
		"types":        {"region"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var mapboxResp response
	if err := json.NewDecoder(resp.Body).Decode(&mapboxResp); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("decode response: %w", err)
	}

	region := extractRegion(mapboxResp)
	if region == "" {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		c.logger.Debug("no US region for coordinate", "lat", lat, "lon", lon)
		return "", nil
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	c.logger.Debug("reverse geocoded region",
		"lat", lat, "lon", lon, "region", region,
		"duration", time.Since(start),
	)
	return region, nil
}

// extractRegion pulls the USPS state code from a region feature's
// short code ("US-VA" → "VA"). Non-US short codes yield empty.
func extractRegion(resp response) domain.Region {
	for _, f := range resp.Features {
		code := f.Properties.ShortCode
		if code == "" {
			code = f.ShortCode
		}
		state, ok := strings.CutPrefix(strings.ToUpper(code), "US-")
		if !ok || len(state) != 2 {
			continue
		}
		return domain.NormalizeRegion(state)
	}
	return ""
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	ShortCode  string `json:"short_code"`
	Properties struct {
		ShortCode string `json:"short_code"`
	} `json:"properties"`
}
