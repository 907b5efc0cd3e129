package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/matchweather/internal/domain"
)

func rowsWithTemps(temps ...float64) []domain.MergedRecord {
	rows := make([]domain.MergedRecord, len(temps))
	for i, tc := range temps {
		rows[i] = domain.MergedRecord{TempC: tc}
	}
	return rows
}

func TestMedianTemp(t *testing.T) {
	tests := []struct {
		name  string
		temps []float64
		want  float64
	}{
		{"single", []float64{32}, 32},
		{"odd count", []float64{34, 24, 32}, 32},
		{"even count interpolates", []float64{24, 32, 34, 28}, 30},
		{"unsorted input", []float64{40, 10, 30, 20}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, medianTemp(rowsWithTemps(tt.temps...)))
		})
	}
}

func TestSummarize(t *testing.T) {
	h := 60.0
	table := domain.MergedTable{Rows: []domain.MergedRecord{
		{TotalRuns: 180, TempC: 32, Humidity: &h},
		{TotalRuns: 320, TempC: 24},
	}}

	s, ok := summarize(table)
	require.True(t, ok)

	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 250.0, s.AvgTotalRuns)
	assert.Equal(t, 28.0, s.AvgTempC)
	// Humidity averages only over rows that carry it.
	require.NotNil(t, s.AvgHumidity)
	assert.Equal(t, 60.0, *s.AvgHumidity)
}

func TestSummarize_Empty(t *testing.T) {
	_, ok := summarize(domain.MergedTable{})
	assert.False(t, ok)
}

func TestSummarize_NoHumidityAnywhere(t *testing.T) {
	table := domain.MergedTable{Rows: []domain.MergedRecord{{TotalRuns: 180, TempC: 32}}}

	s, ok := summarize(table)
	require.True(t, ok)
	assert.Nil(t, s.AvgHumidity)
}

func TestBuildInsights_MedianSplit(t *testing.T) {
	table := domain.MergedTable{Rows: []domain.MergedRecord{
		{TempC: 24, TotalRuns: 312},
		{TempC: 32, TotalRuns: 180},
		{TempC: 34.5, TotalRuns: 325},
	}}

	ins, ok := buildInsights(table)
	require.True(t, ok)

	// Median 32; rows at the median count as hot days.
	assert.Equal(t, 32.0, ins.MedianTempC)
	require.NotNil(t, ins.AvgRunsHotDays)
	assert.InDelta(t, 252.5, *ins.AvgRunsHotDays, 1e-9)
	require.NotNil(t, ins.AvgRunsCoolDays)
	assert.Equal(t, 312.0, *ins.AvgRunsCoolDays)
}

func TestBuildInsights_AllRowsOnHotSide(t *testing.T) {
	// Identical temps put every row at the median; the cool side is empty
	// and must report no average.
	table := domain.MergedTable{Rows: []domain.MergedRecord{
		{TempC: 30, TotalRuns: 200},
		{TempC: 30, TotalRuns: 300},
	}}

	ins, ok := buildInsights(table)
	require.True(t, ok)
	require.NotNil(t, ins.AvgRunsHotDays)
	assert.Equal(t, 250.0, *ins.AvgRunsHotDays)
	assert.Nil(t, ins.AvgRunsCoolDays)
}

func TestFitTrend(t *testing.T) {
	t.Run("exact fit on colinear points", func(t *testing.T) {
		// runs = 10*temp + 5
		rows := []domain.MergedRecord{
			{TempC: 20, TotalRuns: 205},
			{TempC: 25, TotalRuns: 255},
			{TempC: 30, TotalRuns: 305},
		}

		trend, ok := fitTrend(rows)
		require.True(t, ok)
		assert.InDelta(t, 10.0, trend.Slope, 1e-9)
		assert.InDelta(t, 5.0, trend.Intercept, 1e-9)
	})

	t.Run("fewer than two points", func(t *testing.T) {
		_, ok := fitTrend(rowsWithTemps(32))
		assert.False(t, ok)
	})

	t.Run("zero temperature variance", func(t *testing.T) {
		rows := []domain.MergedRecord{
			{TempC: 30, TotalRuns: 100},
			{TempC: 30, TotalRuns: 200},
		}
		_, ok := fitTrend(rows)
		assert.False(t, ok)
	})
}
