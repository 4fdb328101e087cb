package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aircast/aircast/internal/aqi"
	"github.com/aircast/aircast/internal/cluster"
	"github.com/aircast/aircast/internal/station"
)

func summaryWithPM25(location string, value float64) station.Summary {
	return station.Summary{
		Location: location,
		Measurements: map[station.Parameter]station.Reading{
			station.ParamPM25: {Value: value},
		},
	}
}

func summaryWithoutPM25(location string) station.Summary {
	return station.Summary{
		Location:     location,
		Measurements: map[station.Parameter]station.Reading{},
	}
}

func TestAggregate_ExcludesMembersWithoutValue(t *testing.T) {
	members := []station.Summary{
		summaryWithPM25("a", 10),
		summaryWithPM25("b", 20),
		summaryWithoutPM25("c"),
	}

	s := cluster.Aggregate(members)

	assert.Equal(t, 3, s.MemberCount)
	assert.Equal(t, 15.0, s.AverageValue)

	wantAQI, ok := aqi.ToAQI(15)
	require.True(t, ok)
	assert.True(t, s.HasAQI)
	assert.Equal(t, wantAQI, s.AQI)
	assert.Equal(t, aqi.Color(wantAQI), s.Color)
}

func TestAggregate_AllMembersMissingValue(t *testing.T) {
	members := []station.Summary{
		summaryWithoutPM25("a"),
		summaryWithoutPM25("b"),
	}

	s := cluster.Aggregate(members)

	assert.Equal(t, 2, s.MemberCount)
	assert.Equal(t, 0.0, s.AverageValue)
	// Average 0 still maps onto the index scale.
	assert.True(t, s.HasAQI)
	assert.Equal(t, 0, s.AQI)
}

func TestAggregate_Empty(t *testing.T) {
	s := cluster.Aggregate(nil)
	assert.Equal(t, 0, s.MemberCount)
	assert.Equal(t, 0.0, s.AverageValue)
}

func TestNewSizer_FloorsGlobalMax(t *testing.T) {
	z := cluster.NewSizer(nil)
	assert.Equal(t, 100.0, z.GlobalMax)

	z = cluster.NewSizer([]station.Summary{summaryWithoutPM25("a")})
	assert.Equal(t, 100.0, z.GlobalMax)

	z = cluster.NewSizer([]station.Summary{summaryWithPM25("a", 240)})
	assert.Equal(t, 240.0, z.GlobalMax)
}

func TestSizer_Size(t *testing.T) {
	z := cluster.NewSizer([]station.Summary{summaryWithPM25("a", 200)})

	small := z.Size(cluster.Aggregate([]station.Summary{summaryWithPM25("a", 10)}))
	large := z.Size(cluster.Aggregate([]station.Summary{summaryWithPM25("a", 200)}))

	assert.Greater(t, large, small)
	assert.GreaterOrEqual(t, small, 28)
	// base + full value scale + severity cap is the ceiling.
	assert.LessOrEqual(t, large, 28+32+30)
}

func TestHeatPoints(t *testing.T) {
	loaded := []station.Summary{
		summaryWithPM25("hot", 200),
		summaryWithPM25("mild", 100),
		summaryWithPM25("trace", 1),
		summaryWithoutPM25("unknown"),
	}

	points := cluster.HeatPoints(loaded)
	require.Len(t, points, 4)

	assert.Equal(t, 1.0, points[0].Weight)
	assert.Equal(t, 0.5, points[1].Weight)
	// Clamped to the visibility floor.
	assert.Equal(t, 0.05, points[2].Weight)
	// Missing readings contribute the small default weight.
	assert.Equal(t, 10.0/200.0, points[3].Weight)
}
