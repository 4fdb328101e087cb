package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aircast/aircast/internal/airquality"
	"github.com/aircast/aircast/internal/api/response"
	"github.com/aircast/aircast/internal/export"
)

// ExportHandler handles CSV download endpoints.
type ExportHandler struct {
	bookmarks  BookmarkService
	airQuality AirQualityService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(bookmarks BookmarkService, airQuality AirQualityService) *ExportHandler {
	return &ExportHandler{bookmarks: bookmarks, airQuality: airQuality}
}

// ExportBookmarks handles GET /v1/bookmarks/export.csv - download all saved
// stations with their history. The tz parameter selects whether the local
// time column is rendered in server-local time or UTC; the UTC column is
// always present.
func (h *ExportHandler) ExportBookmarks(w http.ResponseWriter, r *http.Request) {
	list, err := h.bookmarks.List(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, r, "Bookmark storage unavailable")
		return
	}

	mode := export.TimeZoneLocal
	if r.URL.Query().Get("tz") == string(export.TimeZoneUTC) {
		mode = export.TimeZoneUTC
	}

	data := export.BookmarkCSV(list, mode, time.Local)
	response.CSV(w, r, export.BookmarkFilename(time.Now()), data)
}

// ExportStationHistory handles GET /v1/air-quality/history/export.csv -
// download a station's recent PM2.5 series. The hours parameter windows the
// series; the station is addressed like the history endpoint.
func (h *ExportHandler) ExportStationHistory(w http.ResponseWriter, r *http.Request) {
	hours := parsePositiveInt(r, "hours", 24)

	q := airquality.HistoryQuery{
		Location: strings.TrimSpace(r.URL.Query().Get("location")),
		Limit:    airquality.DefaultHistoryLimit,
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

	points, err := h.airQuality.History(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, airquality.ErrInvalidQuery):
			response.BadRequest(w, r, "A location name or coordinates are required", nil)
		case errors.Is(err, airquality.ErrInvalidCoordinates):
			response.BadRequest(w, r, "Coordinates out of range", nil)
		default:
			response.ServiceUnavailable(w, r, "Air quality provider unavailable")
		}
		return
	}

	data := export.StationCSV(points, hours)
	response.CSV(w, r, export.StationFilename(q.Location, hours), data)
}
