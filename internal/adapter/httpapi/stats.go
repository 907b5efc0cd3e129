package httpapi

import (
	"sort"

	"github.com/pitchside/matchweather/internal/domain"
)

// Summary holds the headline metrics rendered above the charts.
type Summary struct {
	Count        int      `json:"count"`
	AvgTotalRuns float64  `json:"avg_total_runs"`
	AvgTempC     float64  `json:"avg_temp_c"`
	AvgHumidity  *float64 `json:"avg_humidity,omitempty"` // absent when no row carries humidity
}

// summarize computes the headline metrics. The second return value is false
// for an empty table; callers must render the no-data notice instead of
// aggregating nothing.
func summarize(t domain.MergedTable) (Summary, bool) {
	if len(t.Rows) == 0 {
		return Summary{}, false
	}

	var runs, temp, humidity float64
	humidityN := 0
	for _, r := range t.Rows {
		runs += r.TotalRuns
		temp += r.TempC
		if r.Humidity != nil {
			humidity += *r.Humidity
			humidityN++
		}
	}

	n := float64(len(t.Rows))
	s := Summary{
		Count:        len(t.Rows),
		AvgTotalRuns: runs / n,
		AvgTempC:     temp / n,
	}
	if humidityN > 0 {
		avg := humidity / float64(humidityN)
		s.AvgHumidity = &avg
	}
	return s, true
}

// Insights compares scoring on hotter and cooler days, split at the median
// temperature. Days at or above the median count as hot. A side with no
// rows reports no average rather than a zero.
type Insights struct {
	Count           int      `json:"count"`
	MedianTempC     float64  `json:"median_temp_c"`
	AvgRunsHotDays  *float64 `json:"avg_runs_hot_days,omitempty"`
	AvgRunsCoolDays *float64 `json:"avg_runs_cool_days,omitempty"`
}

func buildInsights(t domain.MergedTable) (Insights, bool) {
	if len(t.Rows) == 0 {
		return Insights{}, false
	}

	median := medianTemp(t.Rows)

	var hotRuns, coolRuns float64
	hotN, coolN := 0, 0
	for _, r := range t.Rows {
		if r.TempC >= median {
			hotRuns += r.TotalRuns
			hotN++
		} else {
			coolRuns += r.TotalRuns
			coolN++
		}
	}

	ins := Insights{Count: len(t.Rows), MedianTempC: median}
	if hotN > 0 {
		avg := hotRuns / float64(hotN)
		ins.AvgRunsHotDays = &avg
	}
	if coolN > 0 {
		avg := coolRuns / float64(coolN)
		ins.AvgRunsCoolDays = &avg
	}
	return ins, true
}

// medianTemp interpolates between the two middle values for even-length
// inputs, matching the conventional statistical median.
func medianTemp(rows []domain.MergedRecord) float64 {
	temps := make([]float64, len(rows))
	for i, r := range rows {
		temps[i] = r.TempC
	}
	sort.Float64s(temps)

	mid := len(temps) / 2
	if len(temps)%2 == 1 {
		return temps[mid]
	}
	return (temps[mid-1] + temps[mid]) / 2
}
