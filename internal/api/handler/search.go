package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aircast/aircast/internal/api/models"
	"github.com/aircast/aircast/internal/api/response"
	"github.com/aircast/aircast/internal/geocode"
)

// GeocodeService resolves a city name to a place.
type GeocodeService interface {
	Search(ctx context.Context, name string) (*geocode.Place, error)
}

// SearchHandler handles city search endpoints.
type SearchHandler struct {
	geocoder GeocodeService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(geocoder GeocodeService) *SearchHandler {
	return &SearchHandler{geocoder: geocoder}
}

// Search handles GET /v1/search - resolve a city name to coordinates.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		response.BadRequest(w, r, "Query parameter q is required", []models.FieldError{
			{Field: "q", Message: "must not be empty", Code: "required"},
		})
		return
	}

	place, err := h.geocoder.Search(r.Context(), query)
	switch {
	case errors.Is(err, geocode.ErrNotFound):
		response.NotFound(w, r, "No place matches the query")
		return
	case errors.Is(err, geocode.ErrEmptyQuery):
		response.BadRequest(w, r, "Query parameter q is required", nil)
		return
	case err != nil:
		response.ServiceUnavailable(w, r, "Geocoding provider unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, models.SearchResponse{
		Query: query,
		Place: *place,
	})
}
