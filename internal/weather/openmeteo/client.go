// Package openmeteo provides a client for the Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aircast/aircast/internal/provider/resilience"
	"github.com/aircast/aircast/internal/weather"
)

const (
	// DefaultBaseURL is the base URL for the Open-Meteo forecast API.
	DefaultBaseURL = "https://api.open-meteo.com"

	// ProviderName identifies this provider.
	ProviderName = "open-meteo"
)

// timestamp layouts used by the API. Hourly times are local to the resolved
// timezone and carry no offset; daily entries are bare dates.
const (
	hourLayout = "2006-01-02T15:04"
	dayLayout  = "2006-01-02"
)

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

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

// Client is an Open-Meteo forecast API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Open-Meteo client.
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
		httpClient: httpClient,
	}
}

// API response types (from Open-Meteo).

type forecastResponse struct {
	Timezone       string          `json:"timezone"`
	CurrentWeather *currentWeather `json:"current_weather"`
	Hourly         *hourlyBlock    `json:"hourly"`
	Daily          *dailyBlock     `json:"daily"`
}

type currentWeather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	Time          string  `json:"time"`
}

type hourlyBlock struct {
	Time             []string  `json:"time"`
	Temperature      []float64 `json:"temperature_2m"`
	RelativeHumidity []float64 `json:"relativehumidity_2m"`
	Precipitation    []float64 `json:"precipitation"`
}

type dailyBlock struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetCurrentWeather fetches current conditions for a location.
func (c *Client) GetCurrentWeather(ctx context.Context, lat, lon float64) (*weather.Observation, error) {
	q := url.Values{}
	q.Set("latitude", formatCoordinate(lat))
	q.Set("longitude", formatCoordinate(lon))
	q.Set("current_weather", "true")

	result, err := c.fetchForecast(ctx, q)
	if err != nil {
		return nil, err
	}
	if result.CurrentWeather == nil {
		return nil, weather.ErrNoDataForLocation
	}

	return toObservation(result.CurrentWeather, lat, lon), nil
}

// GetForecast fetches current conditions plus hourly and daily forecast.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64, days int) (*weather.Forecast, error) {
	q := url.Values{}
	q.Set("latitude", formatCoordinate(lat))
	q.Set("longitude", formatCoordinate(lon))
	q.Set("hourly", "temperature_2m,relativehumidity_2m,precipitation")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	q.Set("current_weather", "true")
	q.Set("timezone", "auto")
	if days > 0 {
		q.Set("forecast_days", strconv.Itoa(days))
	}

	result, err := c.fetchForecast(ctx, q)
	if err != nil {
		return nil, err
	}

	forecast := &weather.Forecast{
		Lat:       lat,
		Lon:       lon,
		Timezone:  result.Timezone,
		FetchedAt: time.Now(),
	}

	if result.CurrentWeather != nil {
		forecast.Current = toObservation(result.CurrentWeather, lat, lon)
	}
	if result.Hourly != nil {
		forecast.Hourly = toHourly(result.Hourly)
	}
	if result.Daily != nil {
		forecast.Daily = toDaily(result.Daily)
	}

	return forecast, nil
}

func (c *Client) fetchForecast(ctx context.Context, q url.Values) (*forecastResponse, error) {
	reqURL := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from forecast endpoint", resp.StatusCode)
	}

	var result forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	return &result, nil
}

func toObservation(cw *currentWeather, lat, lon float64) *weather.Observation {
	observedAt, _ := time.Parse(hourLayout, cw.Time)

	return &weather.Observation{
		Lat:           lat,
		Lon:           lon,
		Temperature:   cw.Temperature,
		WindSpeed:     cw.WindSpeed,
		WindDirection: cw.WindDirection,
		WeatherCode:   cw.WeatherCode,
		Condition:     weather.ConditionFromCode(cw.WeatherCode),
		ObservedAt:    observedAt,
		FetchedAt:     time.Now(),
	}
}

// toHourly zips the API's parallel arrays into per-hour records. Entries with
// unparseable timestamps are dropped; value arrays shorter than the time
// array leave the missing fields zero.
func toHourly(h *hourlyBlock) []weather.HourlyForecast {
	out := make([]weather.HourlyForecast, 0, len(h.Time))
	for i, raw := range h.Time {
		ts, err := time.Parse(hourLayout, raw)
		if err != nil {
			continue
		}

		entry := weather.HourlyForecast{Time: ts}
		if i < len(h.Temperature) {
			entry.Temperature = h.Temperature[i]
		}
		if i < len(h.RelativeHumidity) {
			entry.Humidity = h.RelativeHumidity[i]
		}
		if i < len(h.Precipitation) {
			entry.Precipitation = h.Precipitation[i]
		}
		out = append(out, entry)
	}
	return out
}

func toDaily(d *dailyBlock) []weather.DailyForecast {
	out := make([]weather.DailyForecast, 0, len(d.Time))
	for i, raw := range d.Time {
		ts, err := time.Parse(dayLayout, raw)
		if err != nil {
			continue
		}

		entry := weather.DailyForecast{Date: ts}
		if i < len(d.TemperatureMax) {
			entry.TemperatureMax = d.TemperatureMax[i]
		}
		if i < len(d.TemperatureMin) {
			entry.TemperatureMin = d.TemperatureMin[i]
		}
		if i < len(d.PrecipitationSum) {
			entry.PrecipitationSum = d.PrecipitationSum[i]
		}
		out = append(out, entry)
	}
	return out
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Ensure Client implements the provider interface.
var _ weather.Provider = (*Client)(nil)
