// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean turns the raw paper metadata CSV into the cleaned dataset
// read by the explorer: publication dates are parsed leniently, rows missing
// a date, title or journal are dropped, a year column is derived and rows
// before types.MinYear are discarded.
package clean

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"time"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

// ErrDatasetNotFound is returned when the raw input CSV does not exist.
var ErrDatasetNotFound = errors.New("dataset not found")

// Summary holds row counts from one cleaning run.
type Summary struct {
	Read    int
	Kept    int
	Dropped int
}

// Clean reads cfg.Input, filters it and writes cfg.Output, replacing any
// previous file. Progress is written to w. When the input is missing no
// output is written and the error wraps ErrDatasetNotFound.
func Clean(cfg types.CleanerConfig, w io.Writer) (Summary, error) {
	fmt.Fprintf(w, "Loading %s\n", cfg.Input)

	raw, err := dataset.ReadTableFile(cfg.Input)
	if errors.Is(err, fs.ErrNotExist) {
		return Summary{}, fmt.Errorf("%w: %s (run the sample-generation step first)", ErrDatasetNotFound, cfg.Input)
	}
	if err != nil {
		return Summary{}, err
	}
	fmt.Fprintf(w, "Loaded %d rows\n", len(raw.Rows))

	cleaned, err := Table(raw)
	if err != nil {
		return Summary{}, fmt.Errorf("cleaning %s: %w", cfg.Input, err)
	}

	if err := dataset.WriteTableAtomic(cfg.Output, cleaned); err != nil {
		return Summary{}, fmt.Errorf("writing %s: %w", cfg.Output, err)
	}

	summary := Summary{
		Read:    len(raw.Rows),
		Kept:    len(cleaned.Rows),
		Dropped: len(raw.Rows) - len(cleaned.Rows),
	}
	fmt.Fprintf(w, "Saved %d rows to %s (%d dropped)\n", summary.Kept, cfg.Output, summary.Dropped)
	return summary, nil
}

// Table applies the cleaning rules to a raw table and returns a new table.
// Every raw column is kept in order; publish_time is rewritten in canonical
// form and a year column is appended, or overwritten if already present.
// Row order is preserved and rows are never added or duplicated.
func Table(raw *dataset.Table) (*dataset.Table, error) {
	idx, err := raw.Require(types.ColumnPublishTime, types.ColumnTitle, types.ColumnJournal)
	if err != nil {
		return nil, err
	}
	pt, ti, jo := idx[0], idx[1], idx[2]

	header := append([]string(nil), raw.Header...)
	yr := raw.Index(types.ColumnYear)
	if yr < 0 {
		yr = len(header)
		header = append(header, types.ColumnYear)
	}

	type kept struct {
		row  []string
		date time.Time
	}
	var rows []kept
	withClock := false

	for _, row := range raw.Rows {
		date, ok := dataset.ParseDate(row[pt])
		if !ok || dataset.IsNA(row[ti]) || dataset.IsNA(row[jo]) {
			continue
		}
		if date.Year() < types.MinYear {
			continue
		}
		if dataset.HasClock(date) {
			withClock = true
		}
		rows = append(rows, kept{row: row, date: date})
	}

	// Dates in one column share a layout; a single time of day switches
	// the whole column to date-time form.
	layout := dataset.DateLayout
	if withClock {
		layout = dataset.DateTimeLayout
	}

	out := &dataset.Table{Header: header, Rows: make([][]string, 0, len(rows))}
	for _, k := range rows {
		row := make([]string, len(header))
		copy(row, k.row)
		row[pt] = k.date.Format(layout)
		row[yr] = strconv.Itoa(k.date.Year())
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
