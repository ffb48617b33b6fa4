// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// YearCount is one bar of the yearly totals view.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// JournalCount is one bar of the top journals view.
type JournalCount struct {
	Journal string `json:"journal" yaml:"journal"`
	Count   int    `json:"count" yaml:"count"`
}

// WordCount is one entry of the title word frequency view.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Views bundles the three derived views for one selected year.
type Views struct {
	// Year is the selected year Journals and Words were computed for.
	Year int `json:"year" yaml:"year"`

	// Yearly holds record counts per year, ascending by year.
	Yearly []YearCount `json:"yearly" yaml:"yearly"`

	// Journals holds the largest journals for Year, descending by count.
	Journals []JournalCount `json:"journals" yaml:"journals"`

	// Words holds the most frequent title words for Year, descending by count.
	Words []WordCount `json:"words" yaml:"words"`
}
