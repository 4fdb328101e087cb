// Package history normalizes time-ordered pollutant readings for a single
// station into a clean, descending time series.
package history

import (
	"sort"
	"time"
)

// Point is one reading in a station's time series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// RawPoint is a reading as delivered by an upstream provider. Timestamps
// arrive in several fields and formats; UTC is preferred when present.
type RawPoint struct {
	UTC   string
	Local string
	Value float64
}

// timestamp layouts accepted from upstream, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalize converts raw readings into a canonical series: heterogeneous
// timestamps parsed into UTC, records without a usable timestamp dropped,
// duplicate timestamps collapsed to the last value seen, sorted descending
// by time (most recent first).
func Normalize(raw []RawPoint) []Point {
	if raw == nil {
		return nil
	}

	byTime := make(map[time.Time]float64, len(raw))
	for _, r := range raw {
		ts, ok := parseTimestamp(r)
		if !ok {
			continue
		}
		byTime[ts] = r.Value
	}

	points := make([]Point, 0, len(byTime))
	for ts, v := range byTime {
		points = append(points, Point{Time: ts, Value: v})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.After(points[j].Time)
	})

	return points
}

// Window returns the most recent n points of a descending series. The whole
// series is returned when it is shorter than n.
func Window(points []Point, n int) []Point {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[:n]
}

// Chronological returns a copy of a descending series in ascending order,
// for chart-style consumers.
func Chronological(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

func parseTimestamp(r RawPoint) (time.Time, bool) {
	for _, candidate := range []string{r.UTC, r.Local} {
		if candidate == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, candidate); err == nil {
				return ts.UTC(), true
			}
		}
	}
	return time.Time{}, false
}
