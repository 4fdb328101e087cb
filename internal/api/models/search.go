package models

import "github.com/aircast/aircast/internal/geocode"

// SearchResponse is the response for city name resolution.
type SearchResponse struct {
	Query string        `json:"query"`
	Place geocode.Place `json:"place"`
}
