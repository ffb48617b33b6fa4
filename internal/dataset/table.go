// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset reads and writes the metadata CSV files exchanged between
// the cleaner and the explorer, and caches the cleaned dataset for the
// lifetime of the process.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// naValues are the cell values treated as missing. The set matches the
// default missing-value tokens of common dataframe CSV readers so that
// files exported by those tools clean the same way.
var naValues = map[string]bool{
	"":          true,
	"#N/A":      true,
	"#N/A N/A":  true,
	"#NA":       true,
	"-1.#IND":   true,
	"-1.#QNAN":  true,
	"-NaN":      true,
	"-nan":      true,
	"1.#IND":    true,
	"1.#QNAN":   true,
	"<NA>":      true,
	"N/A":       true,
	"NA":        true,
	"NULL":      true,
	"NaN":       true,
	"None":      true,
	"n/a":       true,
	"nan":       true,
	"null":      true,
}

// IsNA reports whether a cell value counts as missing.
func IsNA(s string) bool {
	return naValues[s]
}

// Table is a CSV file held in memory: a header row and data rows. Every row
// has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Require returns the positions of the named columns. It fails with
// ErrMissingColumn naming the first absent column.
func (t *Table) Require(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = t.Index(name)
		if idx[i] < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return idx, nil
}

// ReadTable parses a CSV stream with a header row. Short rows are padded
// with empty (missing) cells; rows longer than the header are an error.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("reading header: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Header: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(row))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadTableFile opens path and parses it with ReadTable. The returned error
// wraps the os error, so callers can test errors.Is(err, fs.ErrNotExist).
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// WriteTable writes t as CSV with a header row and LF line endings.
func WriteTable(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

// WriteTableAtomic writes t to path through a temporary file in the same
// directory and renames it into place, replacing any existing file. A
// failed write leaves no partial output behind.
func WriteTableAtomic(path string, t *Table) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".dataset-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := WriteTable(tmpFile, t)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
