package httpapi

import (
	"net/http"
	"sort"

	"github.com/go-chi/render"

	"github.com/pitchside/matchweather/internal/domain"
)

// scatterPoint is one match in the temperature-vs-runs scatter plot, with
// the fields the dashboard shows on hover.
type scatterPoint struct {
	TempC     float64 `json:"temp_c"`
	TotalRuns float64 `json:"total_runs"`
	City      string  `json:"city"`
	Venue     string  `json:"venue,omitempty"`
	Team1     string  `json:"team1,omitempty"`
	Team2     string  `json:"team2,omitempty"`
	DateStr   string  `json:"date_str"`
}

// trendLine is the least-squares fit overlaid on the scatter plot. Chart
// decoration, not part of the data-prep core.
type trendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	table, ok := s.filtered(w, r)
	if !ok {
		return
	}

	points := make([]scatterPoint, 0, len(table.Rows))
	for _, rec := range table.Rows {
		points = append(points, scatterPoint{
			TempC:     rec.TempC,
			TotalRuns: rec.TotalRuns,
			City:      rec.City,
			Venue:     rec.Venue,
			Team1:     rec.Team1,
			Team2:     rec.Team2,
			DateStr:   rec.DateStr,
		})
	}

	resp := map[string]any{"count": len(points), "points": points}
	if trend, ok := fitTrend(table.Rows); ok {
		resp["trend"] = trend
	}
	if len(points) == 0 {
		resp["message"] = noDataMessage
	}
	render.JSON(w, r, resp)
}

// fitTrend computes an ordinary least-squares line of total_runs on temp_c.
// Returns false when there are fewer than two points or no temperature
// variance, where a fit is undefined.
func fitTrend(rows []domain.MergedRecord) (trendLine, bool) {
	if len(rows) < 2 {
		return trendLine{}, false
	}

	n := float64(len(rows))
	var sumX, sumY, sumXX, sumXY float64
	for _, r := range rows {
		sumX += r.TempC
		sumY += r.TotalRuns
		sumXX += r.TempC * r.TempC
		sumXY += r.TempC * r.TotalRuns
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return trendLine{}, false
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return trendLine{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}, true
}

// timelinePoint is one match on the per-city time axis.
type timelinePoint struct {
	DateStr   string  `json:"date_str"`
	TotalRuns float64 `json:"total_runs"`
	TempC     float64 `json:"temp_c"`
}

type timelineSeries struct {
	City   string          `json:"city"`
	Points []timelinePoint `json:"points"`
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	table, ok := s.filtered(w, r)
	if !ok {
		return
	}

	// Date-ordered within each city; stable so same-day matches keep their
	// join order.
	rows := make([]domain.MergedRecord, len(table.Rows))
	copy(rows, table.Rows)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	byCity := map[string]*timelineSeries{}
	var cities []string
	for _, rec := range rows {
		series, seen := byCity[rec.City]
		if !seen {
			series = &timelineSeries{City: rec.City}
			byCity[rec.City] = series
			cities = append(cities, rec.City)
		}
		series.Points = append(series.Points, timelinePoint{
			DateStr:   rec.DateStr,
			TotalRuns: rec.TotalRuns,
			TempC:     rec.TempC,
		})
	}
	sort.Strings(cities)

	out := make([]timelineSeries, 0, len(cities))
	for _, c := range cities {
		out = append(out, *byCity[c])
	}
	render.JSON(w, r, map[string]any{"series": out})
}

// bucketBar is one bar in the runs-by-temperature-bucket chart.
type bucketBar struct {
	TempBucket   string  `json:"temp_bucket"`
	AvgTotalRuns float64 `json:"avg_total_runs"`
	Count        int     `json:"count"`
}

func (s *Server) handleTempBuckets(w http.ResponseWriter, r *http.Request) {
	table, ok := s.filtered(w, r)
	if !ok {
		return
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, rec := range table.Rows {
		sums[rec.TempBucket] += rec.TotalRuns
		counts[rec.TempBucket]++
	}

	// Buckets render coldest-first, never lexically.
	bars := make([]bucketBar, 0, 4)
	for _, bucket := range domain.BucketOrder() {
		if counts[bucket] == 0 {
			continue
		}
		bars = append(bars, bucketBar{
			TempBucket:   bucket,
			AvgTotalRuns: sums[bucket] / float64(counts[bucket]),
			Count:        counts[bucket],
		})
	}
	render.JSON(w, r, map[string]any{"buckets": bars})
}

// weatherBar is one bar in the runs-by-weather-type chart.
type weatherBar struct {
	WeatherType  string  `json:"weather_type"`
	AvgTotalRuns float64 `json:"avg_total_runs"`
	Count        int     `json:"count"`
}

func (s *Server) handleWeatherTypes(w http.ResponseWriter, r *http.Request) {
	table, ok := s.filtered(w, r)
	if !ok {
		return
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, rec := range table.Rows {
		sums[rec.WeatherType] += rec.TotalRuns
		counts[rec.WeatherType]++
	}

	bars := make([]weatherBar, 0, len(counts))
	for wt, n := range counts {
		bars = append(bars, weatherBar{
			WeatherType:  wt,
			AvgTotalRuns: sums[wt] / float64(n),
			Count:        n,
		})
	}
	// Highest-scoring weather first; name breaks ties deterministically.
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].AvgTotalRuns != bars[j].AvgTotalRuns {
			return bars[i].AvgTotalRuns > bars[j].AvgTotalRuns
		}
		return bars[i].WeatherType < bars[j].WeatherType
	})
	render.JSON(w, r, map[string]any{"weather_types": bars})
}
