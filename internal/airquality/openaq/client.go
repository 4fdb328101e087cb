// Package openaq provides a client for the OpenAQ v3 measurements API.
package openaq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aircast/aircast/internal/airquality"
	"github.com/aircast/aircast/internal/history"
	"github.com/aircast/aircast/internal/provider/resilience"
	"github.com/aircast/aircast/internal/station"
)

const (
	// DefaultBaseURL is the base URL for the OpenAQ API.
	DefaultBaseURL = "https://api.openaq.org"

	// ProviderName identifies this provider.
	ProviderName = "openaq"
)

// ClientConfig holds configuration for the OpenAQ client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// APIKey is sent as the X-API-Key header when set. OpenAQ serves
	// unauthenticated requests at a lower rate limit.
	APIKey string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default resilient client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is an OpenAQ API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
}

// NewClient creates a new OpenAQ client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		})
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

// API response types (from OpenAQ v3).

type measurementsResponse struct {
	Results []measurementResult `json:"results"`
}

type measurementResult struct {
	Location    string       `json:"location"`
	Parameter   string       `json:"parameter"`
	Value       float64      `json:"value"`
	Unit        string       `json:"unit"`
	Coordinates *coordinates `json:"coordinates"`
	Date        dateFields   `json:"date"`
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type dateFields struct {
	UTC   string `json:"utc"`
	Local string `json:"local"`
}

// NearbyMeasurements retrieves raw measurements around a coordinate, nearest
// stations first.
func (c *Client) NearbyMeasurements(ctx context.Context, lat, lon float64, radiusMeters, limit int) ([]station.Measurement, error) {
	q := url.Values{}
	q.Set("coordinates", formatCoordinates(lat, lon))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("order_by", "distance")
	q.Set("sort", "asc")

	result, err := c.fetchMeasurements(ctx, q)
	if err != nil {
		return nil, err
	}

	measurements := make([]station.Measurement, 0, len(result.Results))
	for _, m := range result.Results {
		measurements = append(measurements, toMeasurement(m))
	}

	return measurements, nil
}

// History retrieves raw PM2.5 readings for a single station, newest first.
// Queries by location name when set, otherwise by coordinates with a fixed
// radius.
func (c *Client) History(ctx context.Context, hq airquality.HistoryQuery) ([]history.RawPoint, error) {
	limit := hq.Limit
	if limit <= 0 {
		limit = airquality.DefaultHistoryLimit
	}

	q := url.Values{}
	q.Set("parameter", "pm25")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", "desc")

	if hq.Location != "" {
		q.Set("location", hq.Location)
	} else {
		q.Set("coordinates", formatCoordinates(hq.Latitude, hq.Longitude))
		q.Set("radius", strconv.Itoa(airquality.HistoryRadiusMeters))
		q.Set("order_by", "date")
	}

	result, err := c.fetchMeasurements(ctx, q)
	if err != nil {
		return nil, err
	}

	points := make([]history.RawPoint, 0, len(result.Results))
	for _, m := range result.Results {
		points = append(points, history.RawPoint{
			UTC:   m.Date.UTC,
			Local: m.Date.Local,
			Value: m.Value,
		})
	}

	return points, nil
}

func (c *Client) fetchMeasurements(ctx context.Context, q url.Values) (*measurementsResponse, error) {
	reqURL := fmt.Sprintf("%s/v3/measurements?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch measurements: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from measurements endpoint", resp.StatusCode)
	}

	var result measurementsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode measurements response: %w", err)
	}

	return &result, nil
}

// toMeasurement converts an API result to a domain Measurement. The raw
// parameter spelling is kept; aggregation canonicalizes it. Results without
// coordinates keep the zero pair and still group by location name.
func toMeasurement(m measurementResult) station.Measurement {
	out := station.Measurement{
		Location:  m.Location,
		Parameter: m.Parameter,
		Value:     m.Value,
		Unit:      m.Unit,
	}

	if m.Coordinates != nil {
		out.Latitude = m.Coordinates.Latitude
		out.Longitude = m.Coordinates.Longitude
	}

	if ts, err := time.Parse(time.RFC3339, m.Date.UTC); err == nil {
		out.MeasuredAt = ts
	}

	return out
}

func formatCoordinates(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}

// Ensure Client implements the provider interface.
var _ airquality.Provider = (*Client)(nil)
