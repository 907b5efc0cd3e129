// Package ingest reads the delimited source files into the typed tables the
// join operates on. Headers are matched case-insensitively after trimming,
// required columns are validated up front (one hard stop instead of
// string-keyed lookups failing somewhere downstream), and rows whose date
// cannot be parsed are dropped and counted.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pitchside/matchweather/internal/domain"
)

// Required columns per source.
var (
	matchRequired   = []string{"date", "city", "total_runs"}
	weatherRequired = []string{"date", "city", "temp_c"}
)

// Columns decoded into typed fields; everything else is passthrough.
var (
	matchKnown   = map[string]bool{"date": true, "city": true, "total_runs": true, "season": true, "team1": true, "team2": true, "venue": true}
	weatherKnown = map[string]bool{"date": true, "city": true, "temp_c": true, "humidity": true, "weather_type": true}
)

// DroppedRows counts rows excluded during normalization, by reason.
// Dropping unparseable dates is the best-effort inclusion policy, not an
// error; the counts exist so the caller can log them and feed metrics.
type DroppedRows struct {
	UnparseableDate int
	BadValue        int // unparseable required numeric, or blank city
}

// Total is the number of input rows absent from the loaded table.
func (d DroppedRows) Total() int { return d.UnparseableDate + d.BadValue }

// MatchLoadResult couples a normalized match table with its drop counts.
type MatchLoadResult struct {
	Table   domain.MatchTable
	Dropped DroppedRows
}

// WeatherLoadResult couples a normalized weather table with its drop counts.
type WeatherLoadResult struct {
	Table   domain.WeatherTable
	Dropped DroppedRows
}

// LoadMatches reads the match CSV. Required columns: date, city,
// total_runs. Season, team1, team2, and venue are decoded when present;
// unrecognized columns ride along in Extra.
func LoadMatches(r io.Reader) (MatchLoadResult, error) {
	raw, err := readRaw(r)
	if err != nil {
		return MatchLoadResult{}, fmt.Errorf("read match file: %w", err)
	}
	if err := raw.require("match", matchRequired); err != nil {
		return MatchLoadResult{}, err
	}

	res := MatchLoadResult{Table: domain.MatchTable{
		HasSeason: raw.has("season"),
		HasTeams:  raw.has("team1") || raw.has("team2"),
	}}
	for _, row := range raw.rows {
		date, ok := domain.NormalizeDate(raw.get(row, "date"))
		if !ok {
			res.Dropped.UnparseableDate++
			continue
		}
		city := raw.get(row, "city")
		if city == "" {
			res.Dropped.BadValue++
			continue
		}
		runs, err := strconv.ParseFloat(raw.get(row, "total_runs"), 64)
		if err != nil {
			res.Dropped.BadValue++
			continue
		}

		res.Table.Rows = append(res.Table.Rows, domain.MatchRecord{
			Date:      date,
			City:      city,
			Season:    raw.get(row, "season"),
			Team1:     raw.get(row, "team1"),
			Team2:     raw.get(row, "team2"),
			Venue:     raw.get(row, "venue"),
			TotalRuns: runs,
			Extra:     raw.extras(row, matchKnown),
		})
	}
	return res, nil
}

// LoadWeather reads the weather CSV. Required columns: date, city, temp_c.
// Humidity is nil when the column is absent or the value is blank or
// non-numeric; weather_type defaults to "Unknown" when the column is absent.
func LoadWeather(r io.Reader) (WeatherLoadResult, error) {
	raw, err := readRaw(r)
	if err != nil {
		return WeatherLoadResult{}, fmt.Errorf("read weather file: %w", err)
	}
	if err := raw.require("weather", weatherRequired); err != nil {
		return WeatherLoadResult{}, err
	}

	hasWeatherType := raw.has("weather_type")
	res := WeatherLoadResult{Table: domain.WeatherTable{
		HasHumidity: raw.has("humidity"),
	}}
	for _, row := range raw.rows {
		date, ok := domain.NormalizeDate(raw.get(row, "date"))
		if !ok {
			res.Dropped.UnparseableDate++
			continue
		}
		city := raw.get(row, "city")
		if city == "" {
			res.Dropped.BadValue++
			continue
		}
		temp, err := strconv.ParseFloat(raw.get(row, "temp_c"), 64)
		if err != nil {
			res.Dropped.BadValue++
			continue
		}

		var humidity *float64
		if res.Table.HasHumidity {
			if v, err := strconv.ParseFloat(raw.get(row, "humidity"), 64); err == nil {
				humidity = &v
			}
		}
		weatherType := "Unknown"
		if hasWeatherType {
			weatherType = raw.get(row, "weather_type")
		}

		res.Table.Rows = append(res.Table.Rows, domain.WeatherRecord{
			Date:        date,
			City:        city,
			TempC:       temp,
			Humidity:    humidity,
			WeatherType: weatherType,
			Extra:       raw.extras(row, weatherKnown),
		})
	}
	return res, nil
}

// LoadMatchesFile opens and loads a match CSV from disk.
func LoadMatchesFile(path string) (MatchLoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return MatchLoadResult{}, fmt.Errorf("open match file: %w", err)
	}
	defer f.Close()
	return LoadMatches(f)
}

// LoadWeatherFile opens and loads a weather CSV from disk.
func LoadWeatherFile(path string) (WeatherLoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return WeatherLoadResult{}, fmt.Errorf("open weather file: %w", err)
	}
	defer f.Close()
	return LoadWeather(f)
}

// rawTable is a parsed CSV with normalized header names.
type rawTable struct {
	columns map[string]int // lowercased trimmed header -> field index
	rows    [][]string
}

func readRaw(r io.Reader) (rawTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // tolerate ragged rows; missing fields read as absent

	records, err := reader.ReadAll()
	if err != nil {
		return rawTable{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return rawTable{}, fmt.Errorf("empty file: no header row")
	}

	columns := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return rawTable{columns: columns, rows: records[1:]}, nil
}

// require returns a MissingColumnsError naming exactly the absent columns.
func (t rawTable) require(source string, required []string) error {
	var missing []string
	for _, c := range required {
		if _, ok := t.columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingColumnsError{Source: source, Missing: missing}
	}
	return nil
}

func (t rawTable) has(col string) bool {
	_, ok := t.columns[col]
	return ok
}

// get returns the trimmed cell value for a column, or "" when the column is
// absent or the row is too short.
func (t rawTable) get(row []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// extras collects the passthrough columns for one row.
func (t rawTable) extras(row []string, known map[string]bool) map[string]string {
	var out map[string]string
	for col := range t.columns {
		if known[col] {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[col] = t.get(row, col)
	}
	return out
}
