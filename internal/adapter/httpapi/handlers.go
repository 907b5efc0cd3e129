package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/render"

	"github.com/pitchside/matchweather/internal/domain"
)

// noDataMessage is the neutral notice for an empty filtered table. Empty is
// a valid terminal state, never an error, and never something to aggregate.
const noDataMessage = "No data after applying filters. Try expanding your selections."

// filtered resolves the snapshot and applies the request's FilterSpec.
// Omitted season/city/temperature parameters resolve to select-all against
// the snapshot's facets, matching the dashboard sidebar's initialization
// defaults. An omitted team parameter means no team filter at all.
func (s *Server) filtered(w http.ResponseWriter, r *http.Request) (domain.MergedTable, bool) {
	snap, err := s.store.Snapshot()
	if err != nil {
		s.logger.Error("snapshot unavailable", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return domain.MergedTable{}, false
	}

	spec, err := parseFilter(r.URL.Query(), snap.Facets)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return domain.MergedTable{}, false
	}

	s.metrics.FilterRequests.Inc()
	return domain.Filter(snap.Merged, spec), true
}

func parseFilter(q url.Values, facets domain.Facets) (domain.FilterSpec, error) {
	spec := domain.FilterSpec{
		Seasons: facets.Seasons,
		Cities:  facets.Cities,
		Teams:   q["team"], // nil when omitted: no team filter
		TempMin: facets.TempMin,
		TempMax: facets.TempMax,
	}
	if v, ok := q["season"]; ok {
		spec.Seasons = v
	}
	if v, ok := q["city"]; ok {
		spec.Cities = v
	}

	var err error
	if v := q.Get("temp_min"); v != "" {
		if spec.TempMin, err = strconv.ParseFloat(v, 64); err != nil {
			return spec, fmt.Errorf("invalid temp_min %q", v)
		}
	}
	if v := q.Get("temp_max"); v != "" {
		if spec.TempMax, err = strconv.ParseFloat(v, 64); err != nil {
			return spec, fmt.Errorf("invalid temp_max %q", v)
		}
	}
	return spec, nil
}

// matchRow is the JSON shape of one merged row.
type matchRow struct {
	Date        string            `json:"date"`
	City        string            `json:"city"`
	Season      string            `json:"season,omitempty"`
	Team1       string            `json:"team1,omitempty"`
	Team2       string            `json:"team2,omitempty"`
	Venue       string            `json:"venue,omitempty"`
	TotalRuns   float64           `json:"total_runs"`
	TempC       float64           `json:"temp_c"`
	Humidity    *float64          `json:"humidity,omitempty"`
	WeatherType string            `json:"weather_type"`
	TempBucket  string            `json:"temp_bucket"`
	Extra       map[string]string `json:"extra,omitempty"`
}

func toMatchRow(r domain.MergedRecord) matchRow {
	return matchRow{
		Date:        r.DateStr,
		City:        r.City,
		Season:      r.Season,
		Team1:       r.Team1,
		Team2:       r.Team2,
		Venue:       r.Venue,
		TotalRuns:   r.TotalRuns,
		TempC:       r.TempC,
		Humidity:    r.Humidity,
		WeatherType: r.WeatherType,
		TempBucket:  r.TempBucket,
		Extra:       r.Extra,
	}
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot()
	if err != nil {
		s.logger.Error("snapshot unavailable", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	render.JSON(w, r, map[string]any{
		"seasons":  snap.Facets.Seasons,
		"cities":   snap.Facets.Cities,
		"teams":    snap.Facets.Teams,
		"temp_min": snap.Facets.TempMin,
		"temp_max": snap.Facets.TempMax,
	})
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	table, ok := s.filtered(w, r)
	if !ok {
		return
	}

	rows := make([]matchRow, 0, len(table.Rows))
	for _, rec := range table.Rows {
		rows = append(rows, toMatchRow(rec))
	}

	resp := map[string]any{"count": len(rows), "rows": rows}
	if len(rows) == 0 {
		resp["message"] = noDataMessage
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	table, ok := s.filtered(w, r)
	if !ok {
		return
	}

	summary, nonEmpty := summarize(table)
	if !nonEmpty {
		render.JSON(w, r, map[string]any{"count": 0, "message": noDataMessage})
		return
	}
	render.JSON(w, r, summary)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	table, ok := s.filtered(w, r)
	if !ok {
		return
	}

	ins, nonEmpty := buildInsights(table)
	if !nonEmpty {
		render.JSON(w, r, map[string]any{"count": 0, "message": noDataMessage})
		return
	}
	render.JSON(w, r, ins)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.store.Invalidate()
	snap, err := s.store.Snapshot()
	if err != nil {
		s.logger.Error("reload failed", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	s.logger.Info("dataset reloaded", "merged_rows", len(snap.Merged.Rows))
	render.JSON(w, r, map[string]any{
		"status":      "reloaded",
		"merged_rows": len(snap.Merged.Rows),
		"loaded_at":   snap.LoadedAt,
	})
}
