package domain

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical string rendering of a calendar date, used for
// the date_str display field and for genmock fixtures.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order; first match wins. ISO forms come first,
// then day-first numeric forms (the match data is Indian-style), then
// US-style month-first, then textual month forms. Ambiguous numeric dates
// like 03/05/2021 therefore resolve day-first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"01/02/2006",
	"01-02-2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January, 2006",
}

// ordinalRe strips English ordinal suffixes from day numbers so that
// "3rd May 2021" parses with the "2 January 2006" layout.
var ordinalRe = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)

// NormalizeDate parses a free-form date string into a canonical calendar
// date (UTC midnight). The second return value is false when the input is
// empty or matches none of the supported layouts; callers drop such rows
// rather than defaulting to a sentinel date, which would corrupt the join.
func NormalizeDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = ordinalRe.ReplaceAllString(s, "$1")

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
