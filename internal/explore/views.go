// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package explore derives the dashboard views from the cleaned dataset.
// The view functions are pure functions of the records and the selected
// year; Explorer adds the load-once cache and year validation on top.
package explore

import (
	"sort"
	"strings"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// Default view sizes.
const (
	DefaultTopJournals = 10
	DefaultMaxWords    = 100
)

// YearlyTotals counts records per year, ascending by year. The counts sum
// to len(records).
func YearlyTotals(records []types.Record) []types.YearCount {
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.Year]++
	}

	out := make([]types.YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, types.YearCount{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// TopJournals counts the records of one year per journal and returns the n
// largest, descending by count. Journals with equal counts keep the order
// in which they were first seen. n <= 0 uses DefaultTopJournals.
func TopJournals(records []types.Record, year, n int) []types.JournalCount {
	if n <= 0 {
		n = DefaultTopJournals
	}

	pos := make(map[string]int)
	out := make([]types.JournalCount, 0)
	for _, r := range records {
		if r.Year != year {
			continue
		}
		i, ok := pos[r.Journal]
		if !ok {
			i = len(out)
			pos[r.Journal] = i
			out = append(out, types.JournalCount{Journal: r.Journal})
		}
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TitleWords lowercases the titles of one year, joins them and returns the
// n most frequent words (see WordFrequencies). A year without records
// yields an empty result. n <= 0 uses DefaultMaxWords.
func TitleWords(records []types.Record, year, n int) []types.WordCount {
	var titles []string
	for _, r := range records {
		if r.Year == year {
			titles = append(titles, strings.ToLower(r.Title))
		}
	}
	return WordFrequencies(strings.Join(titles, " "), n)
}

// YearRange returns the smallest and largest year in records. ok is false
// when records is empty.
func YearRange(records []types.Record) (lo, hi int, ok bool) {
	for i, r := range records {
		if i == 0 || r.Year < lo {
			lo = r.Year
		}
		if i == 0 || r.Year > hi {
			hi = r.Year
		}
	}
	return lo, hi, len(records) > 0
}

// ClampYear limits year to [lo, hi].
func ClampYear(year, lo, hi int) int {
	if year < lo {
		return lo
	}
	if year > hi {
		return hi
	}
	return year
}
