// Package geocode resolves free-text city names to coordinates.
package geocode

import "errors"

// Geocoding errors.
var (
	ErrNotFound            = errors.New("place not found")
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
	ErrEmptyQuery          = errors.New("empty search query")
)

// Place is a resolved location. Name includes the country when the provider
// reports one ("Delhi, India").
type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
