// Package station normalizes raw air quality measurement records into
// per-station summaries.
package station

import (
	"fmt"
	"strings"
	"time"
)

// Parameter is a canonical pollutant parameter name.
type Parameter string

const (
	ParamPM25 Parameter = "pm25"
	ParamPM10 Parameter = "pm10"
	ParamNO2  Parameter = "no2"
	ParamO3   Parameter = "o3"
	ParamSO2  Parameter = "so2"
	ParamCO   Parameter = "co"
)

// parameterAliases maps upstream spellings to canonical parameter names.
// Resolution happens once at ingestion so consumers never have to probe
// multiple spellings of the same pollutant.
var parameterAliases = map[string]Parameter{
	"pm25":  ParamPM25,
	"pm2_5": ParamPM25,
	"pm2.5": ParamPM25,
	"pm10":  ParamPM10,
	"no2":   ParamNO2,
	"o3":    ParamO3,
	"so2":   ParamSO2,
	"co":    ParamCO,
}

// CanonicalParameter resolves an upstream parameter spelling to its canonical
// name. Unknown parameters pass through lowercased so they are preserved
// rather than dropped.
func CanonicalParameter(raw string) Parameter {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if p, ok := parameterAliases[normalized]; ok {
		return p
	}
	return Parameter(normalized)
}

// Measurement is a single raw measurement record as delivered by an upstream
// provider. Measurements are ephemeral: they exist only as input to Aggregate.
type Measurement struct {
	Location   string
	Latitude   float64
	Longitude  float64
	Parameter  string
	Value      float64
	Unit       string
	MeasuredAt time.Time
}

// Reading is the latest value for one parameter at a station.
type Reading struct {
	Value      float64   `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	MeasuredAt time.Time `json:"measuredAt,omitempty"`
}

// Summary is the per-station aggregation of raw measurements: one entry per
// parameter, latest value wins.
type Summary struct {
	Location     string                `json:"location"`
	Latitude     float64               `json:"latitude"`
	Longitude    float64               `json:"longitude"`
	Measurements map[Parameter]Reading `json:"measurements"`
}

// Key returns the identity key of the station: location name plus exact
// coordinates as given by the source. Two measurements with the same key
// describe the same station.
func (s *Summary) Key() string {
	return identityKey(s.Location, s.Latitude, s.Longitude)
}

// PM25 returns the station's PM2.5 reading, if present.
func (s *Summary) PM25() (Reading, bool) {
	r, ok := s.Measurements[ParamPM25]
	return r, ok
}

func identityKey(location string, lat, lon float64) string {
	return fmt.Sprintf("%s|%v|%v", location, lat, lon)
}
