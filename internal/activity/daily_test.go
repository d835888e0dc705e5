package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyLoads_GapFillAndSum(t *testing.T) {
	activities := []Activity{
		{StartDate: day("2024-01-05"), MovingTime: 3600},                               // 50
		{StartDate: day("2024-01-01"), MovingTime: 1800},                               // 25
		{StartDate: day("2024-01-05"), MovingTime: 3600, AverageWatts: floatPtr(100)}, // 25
	}

	series := DailyLoads(activities)
	require.Len(t, series, 5)

	expected := []float64{25, 0, 0, 0, 75}
	for i, dl := range series {
		assert.Equal(t, day("2024-01-01").AddDate(0, 0, i), dl.Date, "day %d", i)
		assert.InDelta(t, expected[i], dl.Load, 1e-9, "load on day %d", i)
	}

	// input order is left untouched
	assert.Equal(t, day("2024-01-05"), activities[0].StartDate)
}

func TestDailyLoads_Contiguous(t *testing.T) {
	activities := []Activity{
		{StartDate: day("2024-02-27"), MovingTime: 600},
		{StartDate: day("2024-03-02"), MovingTime: 600},
		{StartDate: day("2023-12-30"), MovingTime: 600},
		{StartDate: day("2024-03-31"), MovingTime: 600}, // crosses a DST change in most zones
	}

	series := DailyLoads(activities)
	require.NotEmpty(t, series)
	assert.Equal(t, day("2023-12-30"), series[0].Date)
	assert.Equal(t, day("2024-03-31"), series[len(series)-1].Date)

	seen := make(map[string]bool)
	for i := 1; i < len(series); i++ {
		assert.Equal(t, series[i-1].Date.AddDate(0, 0, 1), series[i].Date)
		key := series[i].Date.Format(DateLayout)
		assert.False(t, seen[key], "duplicate date %s", key)
		seen[key] = true
	}
	assert.Len(t, series, 93)
}

func TestDailyLoads_SingleDay(t *testing.T) {
	series := DailyLoads([]Activity{{StartDate: day("2024-06-01")}})
	require.Len(t, series, 1)
	assert.Equal(t, 0.0, series[0].Load)
}

func TestDailyLoads_Empty(t *testing.T) {
	assert.Nil(t, DailyLoads(nil))
}
