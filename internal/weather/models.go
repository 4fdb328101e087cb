// Package weather provides current conditions and forecasts with caching.
package weather

import (
	"errors"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrNoDataForLocation   = errors.New("no weather data for location")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// Observation represents current weather at a specific point.
type Observation struct {
	// Location coordinates
	Lat float64
	Lon float64

	// Temperature in Celsius
	Temperature float64

	// WindSpeed in km/h
	WindSpeed float64

	// WindDirection in degrees (0-360, 0=N, 90=E, 180=S, 270=W)
	WindDirection float64

	// WeatherCode is the WMO weather interpretation code.
	WeatherCode int

	// Condition is the WeatherCode mapped to a coarse category.
	Condition Condition

	// Timestamps
	ObservedAt time.Time
	FetchedAt  time.Time
}

// Condition represents the general weather condition.
type Condition string

const (
	ConditionClear        Condition = "CLEAR"
	ConditionClouds       Condition = "CLOUDS"
	ConditionFog          Condition = "FOG"
	ConditionDrizzle      Condition = "DRIZZLE"
	ConditionRain         Condition = "RAIN"
	ConditionSnow         Condition = "SNOW"
	ConditionThunderstorm Condition = "THUNDERSTORM"
	ConditionUnknown      Condition = "UNKNOWN"
)

// ConditionFromCode maps a WMO weather interpretation code to a Condition.
func ConditionFromCode(code int) Condition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionClouds
	case code == 45 || code == 48:
		return ConditionFog
	case code >= 51 && code <= 57:
		return ConditionDrizzle
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95 && code <= 99:
		return ConditionThunderstorm
	default:
		return ConditionUnknown
	}
}

// WindCategory categorizes wind speed for air quality impact assessment.
type WindCategory string

const (
	WindCalm     WindCategory = "CALM"     // < 4 km/h - pollutants accumulate
	WindLight    WindCategory = "LIGHT"    // 4-11 km/h - minimal dispersion
	WindModerate WindCategory = "MODERATE" // 11-29 km/h - good dispersion
	WindStrong   WindCategory = "STRONG"   // > 29 km/h - excellent dispersion
)

// GetWindCategory returns the wind category for the observation.
func (o *Observation) GetWindCategory() WindCategory {
	switch {
	case o.WindSpeed < 4:
		return WindCalm
	case o.WindSpeed < 11:
		return WindLight
	case o.WindSpeed < 29:
		return WindModerate
	default:
		return WindStrong
	}
}

// Forecast represents hourly and daily forecast data for a location.
type Forecast struct {
	// Location
	Lat float64
	Lon float64

	// Timezone is the IANA name resolved by the provider.
	Timezone string

	// Current conditions at fetch time, when the provider includes them.
	Current *Observation

	// Hourly forecasts
	Hourly []HourlyForecast

	// Daily forecasts
	Daily []DailyForecast

	// When the forecast was fetched
	FetchedAt time.Time
}

// HourlyForecast represents weather for a specific hour.
type HourlyForecast struct {
	Time          time.Time
	Temperature   float64
	Humidity      float64
	Precipitation float64
}

// DailyForecast represents aggregate weather for one day.
type DailyForecast struct {
	Date             time.Time
	TemperatureMax   float64
	TemperatureMin   float64
	PrecipitationSum float64
}
