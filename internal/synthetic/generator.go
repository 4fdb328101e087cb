// Package synthetic generates placeholder station and history data for use
// when the air quality provider returns nothing. The generator is seedable so
// fallback output is deterministic in tests and visually stable per session.
package synthetic

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aircast/aircast/internal/history"
	"github.com/aircast/aircast/internal/station"
)

// Spread and value ranges follow the shape of real urban PM2.5 data: points
// scattered within roughly half a degree of the query and values up to the
// very-unhealthy band.
const (
	coordSpread  = 1.0
	maxPM25      = 300
	baseHistory  = 10
	historyRange = 200
)

// Generator produces deterministic synthetic air quality data from a seed.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator from a seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NearbyStations generates n placeholder stations scattered around a center
// point, each with a single PM2.5 reading.
func (g *Generator) NearbyStations(lat, lon float64, n int) []station.Summary {
	now := time.Now().UTC()
	out := make([]station.Summary, 0, n)
	for i := 0; i < n; i++ {
		sLat := lat + (g.rng.Float64()-0.5)*coordSpread
		sLon := lon + (g.rng.Float64()-0.5)*coordSpread
		value := float64(g.rng.Intn(maxPM25 + 1))
		out = append(out, station.Summary{
			Location:  fmt.Sprintf("Synthetic station %d", i+1),
			Latitude:  sLat,
			Longitude: sLon,
			Measurements: map[station.Parameter]station.Reading{
				station.ParamPM25: {Value: value, Unit: "µg/m³", MeasuredAt: now},
			},
		})
	}
	return out
}

// History generates an hourly placeholder series covering the given number of
// hours, descending by time like a normalized real series.
func (g *Generator) History(hours int) []history.Point {
	now := time.Now().UTC().Truncate(time.Hour)
	out := make([]history.Point, 0, hours)
	for i := 0; i < hours; i++ {
		out = append(out, history.Point{
			Time:  now.Add(-time.Duration(i) * time.Hour),
			Value: float64(baseHistory + g.rng.Intn(historyRange+1)),
		})
	}
	return out
}
