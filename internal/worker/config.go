// Package worker provides background cache warming for aircast.
package worker

import (
	"time"
)

// RefreshTarget represents a geographic region to refresh.
type RefreshTarget struct {
	// Name is the human-readable name of the target.
	Name string

	// Points are the lat/lon coordinates to refresh.
	// Typically the centers of major cities.
	Points []Point

	// Priority determines refresh order (lower = higher priority).
	Priority int
}

// Point represents a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// RefreshConfig holds configuration for the provider refresh job.
type RefreshConfig struct {
	// Targets are the geographic regions to refresh.
	// If empty, uses DefaultRefreshTargets.
	Targets []RefreshTarget

	// Concurrency is the number of concurrent refresh operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each refresh operation.
	// Default: 30 seconds
	Timeout time.Duration

	// RefreshAirQuality enables air quality refresh.
	// Default: true
	RefreshAirQuality bool

	// RefreshWeather enables current weather refresh.
	// Default: true
	RefreshWeather bool

	// RefreshForecast enables forecast refresh.
	// Default: true
	RefreshForecast bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Targets:           DefaultRefreshTargets(),
		Concurrency:       3,
		Timeout:           30 * time.Second,
		RefreshAirQuality: true,
		RefreshWeather:    true,
		RefreshForecast:   true,
	}
}

// DefaultRefreshTargets returns the default refresh targets: cities with
// both heavy dashboard traffic and dense monitoring networks.
func DefaultRefreshTargets() []RefreshTarget {
	return []RefreshTarget{
		{
			Name:     "Delhi",
			Priority: 1,
			Points: []Point{
				{Lat: 28.6519, Lon: 77.2315},
				{Lat: 28.5355, Lon: 77.2910}, // Noida corridor
			},
		},
		{
			Name:     "Beijing",
			Priority: 1,
			Points: []Point{
				{Lat: 39.9042, Lon: 116.4074},
			},
		},
		{
			Name:     "Los Angeles",
			Priority: 1,
			Points: []Point{
				{Lat: 34.0522, Lon: -118.2437},
				{Lat: 34.1478, Lon: -118.1445}, // Pasadena
			},
		},
		{
			Name:     "London",
			Priority: 2,
			Points: []Point{
				{Lat: 51.5074, Lon: -0.1278},
			},
		},
		{
			Name:     "Madrid",
			Priority: 2,
			Points: []Point{
				{Lat: 40.4168, Lon: -3.7038},
			},
		},
		{
			Name:     "Mexico City",
			Priority: 2,
			Points: []Point{
				{Lat: 19.4326, Lon: -99.1332},
			},
		},
		{
			Name:     "Jakarta",
			Priority: 3,
			Points: []Point{
				{Lat: -6.2088, Lon: 106.8456},
			},
		},
		{
			Name:     "Lagos",
			Priority: 3,
			Points: []Point{
				{Lat: 6.5244, Lon: 3.3792},
			},
		},
	}
}

// AllPoints returns all points from all targets, ordered by priority.
func (c RefreshConfig) AllPoints() []Point {
	var points []Point
	for _, target := range c.Targets {
		points = append(points, target.Points...)
	}
	return points
}

// TotalPoints returns the total number of points to refresh.
func (c RefreshConfig) TotalPoints() int {
	total := 0
	for _, target := range c.Targets {
		total += len(target.Points)
	}
	return total
}
