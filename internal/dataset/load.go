// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// ErrCleanedDatasetNotFound is returned when the cleaned CSV does not exist.
// The remedy is to run the cleaner first.
var ErrCleanedDatasetNotFound = errors.New("cleaned dataset not found")

// Load reads the cleaned CSV at path into records, preserving row order.
func Load(path string) ([]types.Record, error) {
	t, err := ReadTableFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (run `cord-explorer clean` first)", ErrCleanedDatasetNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	return Records(t)
}

// Records converts a cleaned table into records. The year column must hold
// integers; publish_time is parsed leniently and left zero when unparsable.
func Records(t *Table) ([]types.Record, error) {
	idx, err := t.Require(types.ColumnPublishTime, types.ColumnTitle, types.ColumnJournal, types.ColumnYear)
	if err != nil {
		return nil, err
	}
	pt, ti, jo, yr := idx[0], idx[1], idx[2], idx[3]

	records := make([]types.Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		year, err := strconv.Atoi(strings.TrimSpace(row[yr]))
		if err != nil {
			// Header is line 1.
			return nil, fmt.Errorf("line %d: invalid year %q", i+2, row[yr])
		}
		published, _ := ParseDate(row[pt])
		records = append(records, types.Record{
			PublishTime: published,
			Title:       row[ti],
			Journal:     row[jo],
			Year:        year,
		})
	}
	return records, nil
}

// Cache loads a cleaned dataset on first use and serves the same records
// for the rest of the process. It is never invalidated.
type Cache struct {
	path string
	load func(string) ([]types.Record, error)

	once    sync.Once
	records []types.Record
	err     error
}

// NewCache returns a cache for the cleaned CSV at path. Nothing is read
// until Get is called.
func NewCache(path string) *Cache {
	return &Cache{path: path, load: Load}
}

// Path returns the file the cache reads.
func (c *Cache) Path() string {
	return c.path
}

// Get returns the cached records, loading them on the first call. A load
// failure is cached too; callers must not modify the returned slice.
func (c *Cache) Get() ([]types.Record, error) {
	c.once.Do(func() {
		c.records, c.err = c.load(c.path)
	})
	return c.records, c.err
}

var (
	sharedMu sync.Mutex
	shared   = map[string]*Cache{}
)

// Shared returns the process-wide cache for path, creating it on first use.
func Shared(path string) *Cache {
	key := filepath.Clean(path)

	sharedMu.Lock()
	defer sharedMu.Unlock()
	c, ok := shared[key]
	if !ok {
		c = NewCache(key)
		shared[key] = c
	}
	return c
}
