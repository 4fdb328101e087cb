package cluster

import "github.com/aircast/aircast/internal/station"

// HeatPoint is one weighted point for the map heat layer.
type HeatPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Weight    float64 `json:"weight"`
}

// Heat layer weights are clamped so every station stays faintly visible and
// the hottest station saturates at 1.
const (
	heatFloor       = 0.05
	defaultHeatPM25 = 10
)

// HeatPoints converts loaded stations into normalized heat layer weights.
// Stations without a PM2.5 reading contribute a small default so the layer
// still shows coverage.
func HeatPoints(loaded []station.Summary) []HeatPoint {
	maxPM := 1.0
	values := make([]float64, len(loaded))
	for i := range loaded {
		v := float64(defaultHeatPM25)
		if pm, ok := loaded[i].PM25(); ok {
			v = pm.Value
		}
		values[i] = v
		if v > maxPM {
			maxPM = v
		}
	}

	points := make([]HeatPoint, len(loaded))
	for i := range loaded {
		weight := values[i] / maxPM
		if weight < heatFloor {
			weight = heatFloor
		}
		if weight > 1 {
			weight = 1
		}
		points[i] = HeatPoint{
			Latitude:  loaded[i].Latitude,
			Longitude: loaded[i].Longitude,
			Weight:    weight,
		}
	}

	return points
}
