package importer

import (
	"strings"
	"time"
)

// isoLayout is the canonical output format for normalized dates: ISO-8601
// with millisecond precision in UTC.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Date layouts accepted from bank exports. Four-digit-year layouts are tried
// first because they are unambiguous; two-digit years are pivoted so that
// dates never land more than twoDigitYearPivot years in the future.
var (
	fourDigitYearLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02",
		"2006/01/02",
		"2006.01.02",
		"1/2/2006", "01/02/2006",
		"1-2-2006", "01-02-2006",
		"1.2.2006", "01.02.2006",
		"Jan 2, 2006",
		"2 Jan 2006",
		"20060102",
	}
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
)

var twoDigitYearPivot = 20

// NormalizeDate coerces a raw CSV date value into ISO-8601 form.
//
// If the value cannot be parsed by any known layout it is returned verbatim:
// the import pipeline passes unparseable dates through rather than rejecting
// the row, and lets the persistence layer fail the individual record.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(isoLayout)
		}
	}

	pivot := time.Now().Year() + twoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivot {
				t = t.AddDate(-100, 0, 0)
			}
			return t.UTC().Format(isoLayout)
		}
	}

	return s
}

// ParseISODate parses a normalized date string back into a time.Time.
// It accepts the canonical layout plus plain RFC3339 and date-only forms so
// callers outside the pipeline (the batch upload endpoint) share one parser.
func ParseISODate(s string) (time.Time, bool) {
	for _, layout := range []string{isoLayout, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
