// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cord-explorer pipeline:
// cleaned metadata records, the derived views, and stage configuration.
package types

import "time"

// Column names the pipeline reads from the metadata CSV.
const (
	ColumnPublishTime = "publish_time"
	ColumnTitle       = "title"
	ColumnJournal     = "journal"
	ColumnYear        = "year"
)

// MinYear is the earliest publication year kept by the cleaner.
const MinYear = 2019

// Record is one cleaned paper row: a parsed publication date, a title and a
// journal that are all present, and the derived publication year.
type Record struct {
	// PublishTime is the parsed publication date.
	PublishTime time.Time `json:"publish_time" yaml:"publish_time"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Journal is the publishing journal name.
	Journal string `json:"journal" yaml:"journal"`

	// Year is the calendar year of PublishTime.
	Year int `json:"year" yaml:"year"`
}
