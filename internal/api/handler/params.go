package handler

import (
	"net/http"
	"strconv"

	"github.com/aircast/aircast/internal/api/models"
)

// parseCoordinates extracts the lat and lon query parameters. Range checks
// are left to the services so the boundary rules live in one place.
func parseCoordinates(r *http.Request) (lat, lon float64, fieldErrors []models.FieldError) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "lat", Message: "must be a number", Code: "invalid",
		})
	}

	lon, err = strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "lon", Message: "must be a number", Code: "invalid",
		})
	}

	return lat, lon, fieldErrors
}

// parsePositiveInt reads an optional positive integer query parameter,
// returning fallback when absent or unusable.
func parsePositiveInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
