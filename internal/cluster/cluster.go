// Package cluster computes aggregate summaries for groups of stations shown
// as a single map marker. Which stations belong to a group is decided by the
// map clustering layer; this package only derives the group's content.
package cluster

import (
	"math"

	"github.com/aircast/aircast/internal/aqi"
	"github.com/aircast/aircast/internal/station"
)

// Summary is the aggregate content of one cluster marker. It is derived on
// every redraw and never persisted.
type Summary struct {
	MemberCount  int     `json:"memberCount"`
	AverageValue float64 `json:"averageValue"`
	AQI          int     `json:"aqi"`
	HasAQI       bool    `json:"hasAqi"`
	Color        string  `json:"color"`
}

// Aggregate computes the cluster summary for a group of stations.
//
// The average is the arithmetic mean of each member's PM2.5 value; members
// without a PM2.5 reading are excluded from both sum and count. When no
// member has a value the average is zero.
func Aggregate(members []station.Summary) Summary {
	var sum float64
	var count int
	for i := range members {
		if pm, ok := members[i].PM25(); ok {
			sum += pm.Value
			count++
		}
	}

	var avg float64
	if count > 0 {
		avg = sum / float64(count)
	}

	s := Summary{
		MemberCount:  len(members),
		AverageValue: avg,
		Color:        aqi.ColorUnknown,
	}

	if index, ok := aqi.ToAQI(avg); ok {
		s.AQI = index
		s.HasAQI = true
		s.Color = aqi.Color(index)
	}

	return s
}

// Marker sizing constants: a base diameter, a component scaled by the
// cluster's average relative to the heaviest loaded station, and a capped
// component scaled by AQI severity.
const (
	baseSize     = 28
	valueScale   = 32
	aqiScale     = 30
	aqiSizeCap   = 30
	minGlobalMax = 100
)

// Sizer computes marker pixel sizes for cluster icons. GlobalMax is the
// maximum PM2.5 value across all currently loaded stations and must be
// recomputed whenever the loaded set changes.
type Sizer struct {
	GlobalMax float64
}

// NewSizer derives a Sizer from the currently loaded stations. A floor keeps
// sparse or all-zero data from dividing by zero or rendering every cluster at
// maximum size.
func NewSizer(loaded []station.Summary) Sizer {
	var globalMax float64
	for i := range loaded {
		if pm, ok := loaded[i].PM25(); ok && pm.Value > globalMax {
			globalMax = pm.Value
		}
	}
	if globalMax == 0 {
		globalMax = minGlobalMax
	}
	return Sizer{GlobalMax: globalMax}
}

// Size returns the marker diameter in pixels for a cluster summary.
func (z Sizer) Size(s Summary) int {
	max := z.GlobalMax
	if max < 1 {
		max = 1
	}
	norm := math.Min(1, s.AverageValue/max)

	severity := math.Min(aqiSizeCap, math.Round(float64(s.AQI)/500*aqiScale))

	return baseSize + int(math.Round(valueScale*norm)) + int(severity)
}
