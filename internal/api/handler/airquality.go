package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aircast/aircast/internal/airquality"
	"github.com/aircast/aircast/internal/api/models"
	"github.com/aircast/aircast/internal/api/response"
	"github.com/aircast/aircast/internal/history"
	"github.com/aircast/aircast/internal/station"
)

// Synthetic fallback sizing: how many placeholder stations to scatter around
// a query point, and the default history span in hours.
const (
	syntheticStationCount = 20
	defaultHistoryHours   = 48
)

// AirQualityService provides station discovery and per-station history.
type AirQualityService interface {
	Nearby(ctx context.Context, lat, lon float64) ([]station.Summary, error)
	History(ctx context.Context, q airquality.HistoryQuery) ([]history.Point, error)
}

// SyntheticSource generates placeholder data for fallback responses.
type SyntheticSource interface {
	NearbyStations(lat, lon float64, n int) []station.Summary
	History(hours int) []history.Point
}

// FlagChecker reports the runtime feature flag state the handlers act on.
type FlagChecker interface {
	IsSyntheticFallbackEnabled(ctx context.Context) bool
	IsHeatLayerEnabled(ctx context.Context) bool
}

// AirQualityHandler handles air quality endpoints.
type AirQualityHandler struct {
	service   AirQualityService
	synthetic SyntheticSource
	flags     FlagChecker
}

// AirQualityHandlerConfig holds configuration for the air quality handler.
type AirQualityHandlerConfig struct {
	Service AirQualityService

	// Synthetic is the placeholder generator used when the provider returns
	// nothing usable. Optional; without it empty stays empty and provider
	// failures surface as errors.
	Synthetic SyntheticSource

	// Flags gates the synthetic fallback. Optional; without it the fallback
	// is always on when Synthetic is set.
	Flags FlagChecker
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(cfg AirQualityHandlerConfig) *AirQualityHandler {
	return &AirQualityHandler{
		service:   cfg.Service,
		synthetic: cfg.Synthetic,
		flags:     cfg.Flags,
	}
}

// GetNearby handles GET /v1/air-quality/nearby - stations around a point.
//
// When the provider answers with nothing, or is unreachable, and the
// synthetic fallback is enabled, generated placeholder stations are served
// with the synthetic marker set so clients can label them.
func (h *AirQualityHandler) GetNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, fieldErrors := parseCoordinates(r)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "Invalid coordinates", fieldErrors)
		return
	}

	stations, err := h.service.Nearby(r.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, airquality.ErrInvalidCoordinates) {
			response.BadRequest(w, r, "Coordinates out of range", nil)
			return
		}
		if h.syntheticEnabled(r.Context()) {
			h.writeSyntheticNearby(w, r, lat, lon)
			return
		}
		response.ServiceUnavailable(w, r, "Air quality provider unavailable")
		return
	}

	if len(stations) == 0 && h.syntheticEnabled(r.Context()) {
		h.writeSyntheticNearby(w, r, lat, lon)
		return
	}

	response.JSON(w, r, http.StatusOK, models.NearbyAirQualityResponse{
		Stations:  stations,
		Count:     len(stations),
		Synthetic: false,
		FetchedAt: models.Timestamp(time.Now()),
	})
}

// GetHistory handles GET /v1/air-quality/history - a station's PM2.5 series.
// The station is addressed by location name, by coordinates, or both; the
// limit parameter caps the number of points.
func (h *AirQualityHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	q := airquality.HistoryQuery{
		Location: strings.TrimSpace(r.URL.Query().Get("location")),
		Limit:    parsePositiveInt(r, "limit", airquality.DefaultHistoryLimit),
	}

	if r.URL.Query().Get("lat") != "" || r.URL.Query().Get("lon") != "" {
		lat, lon, fieldErrors := parseCoordinates(r)
		if len(fieldErrors) > 0 {
			response.BadRequest(w, r, "Invalid coordinates", fieldErrors)
			return
		}
		q.Latitude = lat
		q.Longitude = lon
		q.HasCoords = true
	}

	points, err := h.service.History(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, airquality.ErrInvalidQuery):
			response.BadRequest(w, r, "A location name or coordinates are required", nil)
			return
		case errors.Is(err, airquality.ErrInvalidCoordinates):
			response.BadRequest(w, r, "Coordinates out of range", nil)
			return
		}
		if h.syntheticEnabled(r.Context()) {
			h.writeSyntheticHistory(w, r, q.Limit)
			return
		}
		response.ServiceUnavailable(w, r, "Air quality provider unavailable")
		return
	}

	if len(points) == 0 && h.syntheticEnabled(r.Context()) {
		h.writeSyntheticHistory(w, r, q.Limit)
		return
	}

	response.JSON(w, r, http.StatusOK, models.AirQualityHistoryResponse{
		Points:    points,
		Count:     len(points),
		Synthetic: false,
	})
}

func (h *AirQualityHandler) syntheticEnabled(ctx context.Context) bool {
	if h.synthetic == nil {
		return false
	}
	if h.flags == nil {
		return true
	}
	return h.flags.IsSyntheticFallbackEnabled(ctx)
}

func (h *AirQualityHandler) writeSyntheticNearby(w http.ResponseWriter, r *http.Request, lat, lon float64) {
	stations := h.synthetic.NearbyStations(lat, lon, syntheticStationCount)
	response.JSON(w, r, http.StatusOK, models.NearbyAirQualityResponse{
		Stations:  stations,
		Count:     len(stations),
		Synthetic: true,
		FetchedAt: models.Timestamp(time.Now()),
	})
}

func (h *AirQualityHandler) writeSyntheticHistory(w http.ResponseWriter, r *http.Request, limit int) {
	hours := limit
	if hours <= 0 {
		hours = defaultHistoryHours
	}
	points := h.synthetic.History(hours)
	response.JSON(w, r, http.StatusOK, models.AirQualityHistoryResponse{
		Points:    points,
		Count:     len(points),
		Synthetic: true,
	})
}
