package domain

import "sort"

// Facets are the distinct values the dashboard sidebar offers for each
// filter, plus the observed temperature range for the slider. All lists
// are sorted and deduplicated.
type Facets struct {
	Seasons []string
	Cities  []string
	Teams   []string // union of team1 and team2
	TempMin float64
	TempMax float64
}

// FacetsOf scans the merged table once and collects filter options.
// Empty strings are not offered as options. On an empty table the
// temperature range is left at zero.
func FacetsOf(t MergedTable) Facets {
	seasons := map[string]bool{}
	cities := map[string]bool{}
	teams := map[string]bool{}

	f := Facets{}
	for i, r := range t.Rows {
		if r.Season != "" {
			seasons[r.Season] = true
		}
		if r.City != "" {
			cities[r.City] = true
		}
		if r.Team1 != "" {
			teams[r.Team1] = true
		}
		if r.Team2 != "" {
			teams[r.Team2] = true
		}
		if i == 0 || r.TempC < f.TempMin {
			f.TempMin = r.TempC
		}
		if i == 0 || r.TempC > f.TempMax {
			f.TempMax = r.TempC
		}
	}

	f.Seasons = sortedKeys(seasons)
	f.Cities = sortedKeys(cities)
	f.Teams = sortedKeys(teams)
	return f
}

// SelectAll returns the FilterSpec the dashboard starts from: every season,
// city, and team selected and the temperature range covering all observed
// values. Filtering with it returns the whole table.
func (f Facets) SelectAll() FilterSpec {
	return FilterSpec{
		Seasons: f.Seasons,
		Cities:  f.Cities,
		Teams:   f.Teams,
		TempMin: f.TempMin,
		TempMax: f.TempMax,
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
