package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aircast/aircast/internal/api/models"
	"github.com/aircast/aircast/internal/api/response"
	"github.com/aircast/aircast/internal/weather"
)

// WeatherService provides current conditions and forecasts.
type WeatherService interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*weather.Observation, error)
	GetForecast(ctx context.Context, lat, lon float64) (*weather.Forecast, error)
}

// WeatherHandler handles weather endpoints.
type WeatherHandler struct {
	service WeatherService
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(service WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// GetCurrent handles GET /v1/weather/current - current conditions at a point.
func (h *WeatherHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	lat, lon, fieldErrors := parseCoordinates(r)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "Invalid coordinates", fieldErrors)
		return
	}

	obs, err := h.service.GetCurrentWeather(r.Context(), lat, lon)
	if err != nil {
		writeWeatherError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewCurrentWeather(obs))
}

// GetForecast handles GET /v1/weather/forecast - hourly and daily forecast.
func (h *WeatherHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	lat, lon, fieldErrors := parseCoordinates(r)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "Invalid coordinates", fieldErrors)
		return
	}

	forecast, err := h.service.GetForecast(r.Context(), lat, lon)
	if err != nil {
		writeWeatherError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewForecast(forecast))
}

func writeWeatherError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, weather.ErrInvalidCoordinates):
		response.BadRequest(w, r, "Coordinates out of range", nil)
	case errors.Is(err, weather.ErrNoDataForLocation):
		response.NotFound(w, r, "No weather data for location")
	case errors.Is(err, weather.ErrProviderUnavailable):
		response.ServiceUnavailable(w, r, "Weather provider unavailable")
	default:
		response.InternalError(w, r, "Unexpected error")
	}
}
