// Package airquality provides nearby air quality data and per-station
// history, backed by an external measurement provider with caching.
package airquality

import (
	"errors"
)

// Provider errors.
var (
	ErrProviderUnavailable = errors.New("air quality provider unavailable")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrInvalidQuery        = errors.New("history query needs a location or coordinates")
)

// Query defaults. Radius and limits follow the upstream measurement API's
// practical page sizes.
const (
	DefaultRadiusMeters = 20000
	DefaultNearbyLimit  = 50
	DefaultHistoryLimit = 48

	// HistoryRadiusMeters is the fixed search radius used when a history
	// query is made by coordinates instead of a station name.
	HistoryRadiusMeters = 5000
)

// HistoryQuery identifies the station whose time series is requested, either
// by the provider's location name or by a coordinate pair. Location wins when
// both are set.
type HistoryQuery struct {
	Location  string
	Latitude  float64
	Longitude float64
	HasCoords bool

	// Limit caps the number of raw readings requested upstream.
	// Zero means DefaultHistoryLimit.
	Limit int
}

// Valid reports whether the query identifies a station at all.
func (q HistoryQuery) Valid() bool {
	return q.Location != "" || q.HasCoords
}

// ValidCoordinates reports whether a latitude/longitude pair is on the globe.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
