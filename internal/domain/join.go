package domain

// joinKey is the composite join key. Dates are normalized to UTC midnight
// by NormalizeDate, so their unix seconds compare exactly.
type joinKey struct {
	date int64 // unix seconds of the canonical date
	city string
}

func keyOf(date int64, city string) joinKey {
	return joinKey{date: date, city: city}
}

// Join inner-joins the match and weather tables on (date, city).
//
// Output order is deterministic: match-table row order, and for a key with
// several weather rows, weather-table row order within it. Joining the same
// two tables twice yields identical output. Zero merged rows is a valid
// result, not an error; the caller decides how to present it.
func Join(matches MatchTable, weather WeatherTable) MergedTable {
	index := make(map[joinKey][]int, len(weather.Rows))
	for i, w := range weather.Rows {
		k := keyOf(w.Date.Unix(), w.City)
		index[k] = append(index[k], i)
	}

	var rows []MergedRecord
	for _, m := range matches.Rows {
		for _, wi := range index[keyOf(m.Date.Unix(), m.City)] {
			rows = append(rows, mergeRecords(m, weather.Rows[wi]))
		}
	}

	return MergedTable{
		Rows:        rows,
		HasSeason:   matches.HasSeason,
		HasTeams:    matches.HasTeams,
		HasHumidity: weather.HasHumidity,
	}
}

func mergeRecords(m MatchRecord, w WeatherRecord) MergedRecord {
	return MergedRecord{
		Date:        m.Date,
		City:        m.City,
		Season:      m.Season,
		Team1:       m.Team1,
		Team2:       m.Team2,
		Venue:       m.Venue,
		TotalRuns:   m.TotalRuns,
		TempC:       w.TempC,
		Humidity:    w.Humidity,
		WeatherType: w.WeatherType,
		DateStr:     m.Date.Format(DateLayout),
		TempBucket:  TempBucketFor(w.TempC),
		Extra:       mergeExtras(m.Extra, w.Extra),
	}
}

// mergeExtras combines passthrough columns from both sides. A column name
// present in both sources is kept twice, suffixed _match and _weather.
func mergeExtras(match, weather map[string]string) map[string]string {
	if len(match) == 0 && len(weather) == 0 {
		return nil
	}
	out := make(map[string]string, len(match)+len(weather))
	for k, v := range match {
		if _, collides := weather[k]; collides {
			out[k+"_match"] = v
		} else {
			out[k] = v
		}
	}
	for k, v := range weather {
		if _, collides := match[k]; collides {
			out[k+"_weather"] = v
		} else {
			out[k] = v
		}
	}
	return out
}
