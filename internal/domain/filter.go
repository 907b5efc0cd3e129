package domain

// FilterSpec is one dashboard interaction's worth of predicates. It is
// built per request and discarded; applying it never mutates the input
// table.
//
// Selection-set semantics differ by predicate and the difference is load
// bearing:
//
//   - Seasons: membership test, but only when the dataset has season data.
//   - Cities: membership test, always. An empty selection matches nothing.
//   - Teams: a row matches when Team1 or Team2 is selected. An empty
//     selection disables the predicate entirely.
//   - TempMin/TempMax: inclusive range, always applied.
type FilterSpec struct {
	Seasons []string
	Cities  []string
	Teams   []string
	TempMin float64
	TempMax float64
}

// Filter returns the subset of t satisfying every predicate in spec, in
// the input's row order. The input table is left untouched.
func Filter(t MergedTable, spec FilterSpec) MergedTable {
	seasons := toSet(spec.Seasons)
	cities := toSet(spec.Cities)
	teams := toSet(spec.Teams)

	out := MergedTable{
		HasSeason:   t.HasSeason,
		HasTeams:    t.HasTeams,
		HasHumidity: t.HasHumidity,
	}
	for _, r := range t.Rows {
		if t.HasSeason && !seasons[r.Season] {
			continue
		}
		if !cities[r.City] {
			continue
		}
		if len(teams) > 0 && !teams[r.Team1] && !teams[r.Team2] {
			continue
		}
		if r.TempC < spec.TempMin || r.TempC > spec.TempMax {
			continue
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
