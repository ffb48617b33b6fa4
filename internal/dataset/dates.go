// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"strings"
	"time"
)

// dateLayouts lists the publish_time forms found in paper metadata, most
// specific first. Year-only and year-month values resolve to the first day
// of the period.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2",
	"2006-01",
	"2006",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006 Jan 2",
	"2006 January 2",
	"2006 Jan",
	"2006 January",
	"Jan 2006",
	"January 2006",
}

// Canonical output layouts for publish_time.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ParseDate parses a publish_time cell. Missing or unrecognized values
// return ok=false; ParseDate never fails.
func ParseDate(s string) (time.Time, bool) {
	if IsNA(s) {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HasClock reports whether t carries a time of day.
func HasClock(t time.Time) bool {
	h, m, sec := t.Clock()
	return h != 0 || m != 0 || sec != 0 || t.Nanosecond() != 0
}
