package models

import (
	"github.com/aircast/aircast/internal/weather"
)

// CurrentWeatherResponse is the response for current conditions at a point.
type CurrentWeatherResponse struct {
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	Temperature   float64   `json:"temperature"`
	WindSpeed     float64   `json:"windSpeed"`
	WindDirection float64   `json:"windDirection"`
	WeatherCode   int       `json:"weatherCode"`
	Condition     string    `json:"condition"`
	WindCategory  string    `json:"windCategory"`
	ObservedAt    Timestamp `json:"observedAt"`
	FetchedAt     Timestamp `json:"fetchedAt"`
}

// NewCurrentWeather maps a weather observation to its API shape.
func NewCurrentWeather(o *weather.Observation) CurrentWeatherResponse {
	return CurrentWeatherResponse{
		Lat:           o.Lat,
		Lon:           o.Lon,
		Temperature:   o.Temperature,
		WindSpeed:     o.WindSpeed,
		WindDirection: o.WindDirection,
		WeatherCode:   o.WeatherCode,
		Condition:     string(o.Condition),
		WindCategory:  string(o.GetWindCategory()),
		ObservedAt:    Timestamp(o.ObservedAt),
		FetchedAt:     Timestamp(o.FetchedAt),
	}
}

// ForecastHour is one hourly forecast entry.
type ForecastHour struct {
	Time          Timestamp `json:"time"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Precipitation float64   `json:"precipitation"`
}

// ForecastDay is one daily forecast entry. Date is a calendar day in the
// location's timezone, formatted YYYY-MM-DD.
type ForecastDay struct {
	Date             string  `json:"date"`
	TemperatureMax   float64 `json:"temperatureMax"`
	TemperatureMin   float64 `json:"temperatureMin"`
	PrecipitationSum float64 `json:"precipitationSum"`
}

// ForecastResponse is the response for the multi-day forecast endpoint.
type ForecastResponse struct {
	Lat       float64                 `json:"lat"`
	Lon       float64                 `json:"lon"`
	Timezone  string                  `json:"timezone,omitempty"`
	Current   *CurrentWeatherResponse `json:"current,omitempty"`
	Hourly    []ForecastHour          `json:"hourly"`
	Daily     []ForecastDay           `json:"daily"`
	FetchedAt Timestamp               `json:"fetchedAt"`
}

// NewForecast maps a weather forecast to its API shape.
func NewForecast(f *weather.Forecast) ForecastResponse {
	resp := ForecastResponse{
		Lat:       f.Lat,
		Lon:       f.Lon,
		Timezone:  f.Timezone,
		Hourly:    make([]ForecastHour, 0, len(f.Hourly)),
		Daily:     make([]ForecastDay, 0, len(f.Daily)),
		FetchedAt: Timestamp(f.FetchedAt),
	}

	if f.Current != nil {
		current := NewCurrentWeather(f.Current)
		resp.Current = &current
	}

	for _, h := range f.Hourly {
		resp.Hourly = append(resp.Hourly, ForecastHour{
			Time:          Timestamp(h.Time),
			Temperature:   h.Temperature,
			Humidity:      h.Humidity,
			Precipitation: h.Precipitation,
		})
	}

	for _, d := range f.Daily {
		resp.Daily = append(resp.Daily, ForecastDay{
			Date:             d.Date.Format("2006-01-02"),
			TemperatureMax:   d.TemperatureMax,
			TemperatureMin:   d.TemperatureMin,
			PrecipitationSum: d.PrecipitationSum,
		})
	}

	return resp
}
