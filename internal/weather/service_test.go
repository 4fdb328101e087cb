package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aircast/aircast/internal/weather"
)

type fakeProvider struct {
	currentCalls  int
	forecastCalls int

	current  *weather.Observation
	forecast *weather.Forecast
	err      error
}

func (f *fakeProvider) GetCurrentWeather(_ context.Context, _, _ float64) (*weather.Observation, error) {
	f.currentCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.current, nil
}

func (f *fakeProvider) GetForecast(_ context.Context, _, _ float64, _ int) (*weather.Forecast, error) {
	f.forecastCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.forecast, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestService_GetCurrentWeather_CachesByGridCell(t *testing.T) {
	provider := &fakeProvider{current: &weather.Observation{Temperature: 20}}
	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})
	ctx := context.Background()

	obs, err := svc.GetCurrentWeather(ctx, 52.37, 4.89)
	require.NoError(t, err)
	assert.Equal(t, 20.0, obs.Temperature)

	// Same grid cell hits the cache.
	_, err = svc.GetCurrentWeather(ctx, 52.372, 4.891)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.currentCalls)

	// Different cell misses.
	_, err = svc.GetCurrentWeather(ctx, 53.0, 5.0)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.currentCalls)
}

func TestService_GetCurrentWeather_InvalidCoordinates(t *testing.T) {
	provider := &fakeProvider{}
	svc := weather.NewService(weather.ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	_, err := svc.GetCurrentWeather(context.Background(), 91, 0)
	assert.ErrorIs(t, err, weather.ErrInvalidCoordinates)
	assert.Zero(t, provider.currentCalls)
}

func TestService_GetCurrentWeather_ServesStaleOnError(t *testing.T) {
	provider := &fakeProvider{current: &weather.Observation{Temperature: 20}}
	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
		CacheTTL: time.Nanosecond,
	})
	ctx := context.Background()

	first, err := svc.GetCurrentWeather(ctx, 52.37, 4.89)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	provider.err = errors.New("connection refused")

	stale, err := svc.GetCurrentWeather(ctx, 52.37, 4.89)
	require.NoError(t, err)
	assert.Equal(t, first, stale)
}

func TestService_GetCurrentWeather_ProviderUnavailable(t *testing.T) {
	provider := &fakeProvider{err: errors.New("timeout")}
	svc := weather.NewService(weather.ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	_, err := svc.GetCurrentWeather(context.Background(), 52.37, 4.89)
	assert.ErrorIs(t, err, weather.ErrProviderUnavailable)
}

func TestService_GetForecast_Caches(t *testing.T) {
	provider := &fakeProvider{forecast: &weather.Forecast{Timezone: "GMT"}}
	svc := weather.NewService(weather.ServiceConfig{Provider: provider, Logger: zerolog.Nop()})
	ctx := context.Background()

	_, err := svc.GetForecast(ctx, 52.37, 4.89)
	require.NoError(t, err)
	_, err = svc.GetForecast(ctx, 52.37, 4.89)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.forecastCalls)
}

func TestConditionFromCode(t *testing.T) {
	tests := []struct {
		code int
		want weather.Condition
	}{
		{0, weather.ConditionClear},
		{2, weather.ConditionClouds},
		{45, weather.ConditionFog},
		{53, weather.ConditionDrizzle},
		{61, weather.ConditionRain},
		{81, weather.ConditionRain},
		{71, weather.ConditionSnow},
		{86, weather.ConditionSnow},
		{95, weather.ConditionThunderstorm},
		{42, weather.ConditionUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, weather.ConditionFromCode(tt.code), "code %d", tt.code)
	}
}

func TestObservation_GetWindCategory(t *testing.T) {
	assert.Equal(t, weather.WindCalm, (&weather.Observation{WindSpeed: 2}).GetWindCategory())
	assert.Equal(t, weather.WindLight, (&weather.Observation{WindSpeed: 8}).GetWindCategory())
	assert.Equal(t, weather.WindModerate, (&weather.Observation{WindSpeed: 20}).GetWindCategory())
	assert.Equal(t, weather.WindStrong, (&weather.Observation{WindSpeed: 40}).GetWindCategory())
}
