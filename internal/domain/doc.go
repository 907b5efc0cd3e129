// Package domain models cricket match records, daily weather observations,
// and the merged view the dashboard is built on.
//
// # Data Sources
//
// Match records come from an IPL-style results CSV (one row per match) and
// weather observations from a daily per-city CSV. Both arrive with free-form
// date strings and inconsistently cased headers; the ingest package
// normalizes them into the typed tables defined here.
//
// # Join Semantics
//
// The two tables are inner-joined on the composite key (date, city). Date
// equality is exact on the canonical calendar date (UTC midnight). City
// equality is exact and case-sensitive: cities are trimmed at load time but
// deliberately not case-folded, so "Mumbai" and "MUMBAI" are distinct cities
// and silently produce no match. Output row order follows match-table row
// order; a key appearing several times on either side produces the full
// cartesian set of pairings, match-major.
//
// # Derived Fields
//
// Each merged row carries two derived fields:
//
//	date_str     the canonical YYYY-MM-DD rendering of the join-key date
//	temp_bucket  a four-level label from fixed temperature boundaries:
//	             Cool (<=25) | Warm (26-30) | Hot (31-35) | Very Hot (>35)
//	             Boundary values fall into the lower bucket (25.0 is Cool,
//	             35.0 is Hot).
//
// # Filtering
//
// FilterSpec expresses the dashboard sidebar as a conjunction of predicates.
// Two of them intentionally behave asymmetrically: the season predicate is
// skipped entirely when the dataset has no season data, and an empty team
// selection means "no team filter". City membership and the temperature
// range always apply, so an empty city selection matches nothing. This
// asymmetry mirrors the dashboard's initialization defaults and changing it
// would alter what "no selection" means.
package domain
