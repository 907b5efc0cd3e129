package domain

import "time"

// MatchRecord is one cricket match after load-time normalization.
// Date and City are always set; rows that failed date parsing never make it
// into a MatchTable. Columns the loader does not model explicitly (venue
// aside) are carried in Extra keyed by their lowercased header name.
type MatchRecord struct {
	Date      time.Time // canonical calendar date, UTC midnight
	City      string    // trimmed, case-preserving
	Season    string    // optional, empty when the column is absent
	Team1     string
	Team2     string
	Venue     string
	TotalRuns float64
	Extra     map[string]string
}

// WeatherRecord is one daily weather observation after normalization.
type WeatherRecord struct {
	Date        time.Time
	City        string
	TempC       float64
	Humidity    *float64 // nil when the column is absent or the value is blank
	WeatherType string   // "Unknown" when the column is absent
	Extra       map[string]string
}

// MatchTable is an immutable normalized match dataset. HasSeason and
// HasTeams record whether the optional columns were present in the source,
// which the filter engine needs to decide whether those predicates apply.
type MatchTable struct {
	Rows      []MatchRecord
	HasSeason bool
	HasTeams  bool
}

// WeatherTable is an immutable normalized weather dataset.
type WeatherTable struct {
	Rows        []WeatherRecord
	HasHumidity bool
}

// MergedRecord is the inner join of a MatchRecord and a WeatherRecord on
// (date, city), plus the derived display fields.
type MergedRecord struct {
	Date        time.Time
	City        string
	Season      string
	Team1       string
	Team2       string
	Venue       string
	TotalRuns   float64
	TempC       float64
	Humidity    *float64
	WeatherType string

	// Derived at join time.
	DateStr    string
	TempBucket string

	// Passthrough columns from both sides. A name present in both sources
	// is disambiguated with a _match / _weather suffix.
	Extra map[string]string
}

// MergedTable is the joined dataset the dashboard serves. Zero rows is a
// valid state (no overlapping keys), distinct from a load failure.
type MergedTable struct {
	Rows        []MergedRecord
	HasSeason   bool
	HasTeams    bool
	HasHumidity bool
}
