// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

// ErrYearOutOfRange is returned when a selected year lies outside the
// years observed in the dataset.
var ErrYearOutOfRange = errors.New("year out of range")

// Bounds is the selectable year range and the initial selection.
type Bounds struct {
	Min     int `json:"min" yaml:"min"`
	Max     int `json:"max" yaml:"max"`
	Default int `json:"default" yaml:"default"`
}

// Contains reports whether year is selectable.
func (b Bounds) Contains(year int) bool {
	return year >= b.Min && year <= b.Max
}

// NewBounds derives the selectable range from records. The default year is
// clamped into the observed range; an empty dataset offers only the
// default year.
func NewBounds(records []types.Record, defaultYear int) Bounds {
	lo, hi, ok := YearRange(records)
	if !ok {
		return Bounds{Min: defaultYear, Max: defaultYear, Default: defaultYear}
	}
	return Bounds{Min: lo, Max: hi, Default: ClampYear(defaultYear, lo, hi)}
}

// Selection holds the selected year for one session.
type Selection struct {
	bounds Bounds
	year   int
}

// NewSelection starts a selection at the default year of b.
func NewSelection(b Bounds) *Selection {
	return &Selection{bounds: b, year: b.Default}
}

// Year returns the selected year.
func (s *Selection) Year() int {
	return s.year
}

// Bounds returns the range the selection is limited to.
func (s *Selection) Bounds() Bounds {
	return s.bounds
}

// Set changes the selected year. Years outside the bounds are rejected and
// leave the selection unchanged.
func (s *Selection) Set(year int) error {
	if !s.bounds.Contains(year) {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, year, s.bounds.Min, s.bounds.Max)
	}
	s.year = year
	return nil
}

// Explorer answers view queries over a cached cleaned dataset. The yearly
// totals are computed once; the per-year views are recomputed on each call.
type Explorer struct {
	cache       *dataset.Cache
	defaultYear int
	topJournals int
	maxWords    int

	yearlyOnce sync.Once
	yearly     []types.YearCount
}

// New returns an Explorer over cache. Zero values in cfg take defaults.
func New(cache *dataset.Cache, cfg types.ExplorerConfig) *Explorer {
	e := &Explorer{
		cache:       cache,
		defaultYear: cfg.DefaultYear,
		topJournals: cfg.TopJournals,
		maxWords:    cfg.MaxWords,
	}
	if e.defaultYear == 0 {
		e.defaultYear = types.DefaultYear
	}
	if e.topJournals <= 0 {
		e.topJournals = DefaultTopJournals
	}
	if e.maxWords <= 0 {
		e.maxWords = DefaultMaxWords
	}
	return e
}

// Load reads the dataset if it has not been read yet and reports the
// load error, if any.
func (e *Explorer) Load() error {
	_, err := e.cache.Get()
	return err
}

// Records returns the cached records.
func (e *Explorer) Records() ([]types.Record, error) {
	return e.cache.Get()
}

// Bounds returns the selectable year range.
func (e *Explorer) Bounds() (Bounds, error) {
	records, err := e.cache.Get()
	if err != nil {
		return Bounds{}, err
	}
	return NewBounds(records, e.defaultYear), nil
}

// Yearly returns the yearly totals view.
func (e *Explorer) Yearly() ([]types.YearCount, error) {
	records, err := e.cache.Get()
	if err != nil {
		return nil, err
	}
	e.yearlyOnce.Do(func() {
		e.yearly = YearlyTotals(records)
	})
	return e.yearly, nil
}

// Journals returns the top journals view for year.
func (e *Explorer) Journals(year int) ([]types.JournalCount, error) {
	records, err := e.selectYear(year)
	if err != nil {
		return nil, err
	}
	return TopJournals(records, year, e.topJournals), nil
}

// Words returns the title word frequency view for year.
func (e *Explorer) Words(year int) ([]types.WordCount, error) {
	records, err := e.selectYear(year)
	if err != nil {
		return nil, err
	}
	return TitleWords(records, year, e.maxWords), nil
}

// Views returns all three views for year.
func (e *Explorer) Views(year int) (types.Views, error) {
	yearly, err := e.Yearly()
	if err != nil {
		return types.Views{}, err
	}
	journals, err := e.Journals(year)
	if err != nil {
		return types.Views{}, err
	}
	words, err := e.Words(year)
	if err != nil {
		return types.Views{}, err
	}
	return types.Views{Year: year, Yearly: yearly, Journals: journals, Words: words}, nil
}

func (e *Explorer) selectYear(year int) ([]types.Record, error) {
	records, err := e.cache.Get()
	if err != nil {
		return nil, err
	}
	if err := NewSelection(NewBounds(records, e.defaultYear)).Set(year); err != nil {
		return nil, err
	}
	return records, nil
}
