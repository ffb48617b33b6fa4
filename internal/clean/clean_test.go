// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

const sampleRaw = `cord_uid,title,journal,publish_time,abstract
a1,Covid Study,Nature,2020-03-01,first
a2,X,Y,bad-date,second
a3,Old,Z,2018-01-01,third
a4,,Lancet,2021-05-05,no title
a5,Vaccine Trial,,2021-05-05,no journal
a6,Spread Model,Science,,no date
a7,Mask Policy,BMJ,2019,year only
a8,Ventilation,NA,2020-07-01,na journal
a9,"Long, quoted title",Cell,2022-02-02,"comma, inside"
`

func writeRaw(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata_sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runClean(t *testing.T, content string) (*dataset.Table, Summary) {
	t.Helper()
	cfg := types.CleanerConfig{
		Input:  writeRaw(t, content),
		Output: filepath.Join(t.TempDir(), "cleaned.csv"),
	}
	summary, err := Clean(cfg, io.Discard)
	require.NoError(t, err)

	out, err := dataset.ReadTableFile(cfg.Output)
	require.NoError(t, err)
	return out, summary
}

func column(t *testing.T, tbl *dataset.Table, name string) []string {
	t.Helper()
	i := tbl.Index(name)
	require.GreaterOrEqual(t, i, 0, "column %s", name)
	var vals []string
	for _, row := range tbl.Rows {
		vals = append(vals, row[i])
	}
	return vals
}

func TestCleanKeepsOnlyCompleteRecentRows(t *testing.T) {
	out, summary := runClean(t, sampleRaw)

	assert.Equal(t, []string{"a1", "a7", "a9"}, column(t, out, "cord_uid"))
	assert.Equal(t, []string{"2020-03-01", "2019-01-01", "2022-02-02"}, column(t, out, types.ColumnPublishTime))
	assert.Equal(t, []string{"2020", "2019", "2022"}, column(t, out, types.ColumnYear))
	assert.Equal(t, []string{"Covid Study", "Mask Policy", "Long, quoted title"}, column(t, out, types.ColumnTitle))

	assert.Equal(t, Summary{Read: 9, Kept: 3, Dropped: 6}, summary)
}

func TestCleanExampleFromThreeRows(t *testing.T) {
	raw := "publish_time,title,journal\n" +
		"2020-03-01,Covid Study,Nature\n" +
		"bad-date,X,Y\n" +
		"2018-01-01,Old,Z\n"

	out, _ := runClean(t, raw)

	require.Len(t, out.Rows, 1)
	assert.Equal(t, []string{"publish_time", "title", "journal", "year"}, out.Header)
	assert.Equal(t, []string{"2020-03-01", "Covid Study", "Nature", "2020"}, out.Rows[0])
}

func TestCleanOutputInvariants(t *testing.T) {
	out, summary := runClean(t, sampleRaw)

	assert.LessOrEqual(t, summary.Kept, summary.Read)
	for _, title := range column(t, out, types.ColumnTitle) {
		assert.False(t, dataset.IsNA(title), "title %q is missing", title)
	}
	for _, journal := range column(t, out, types.ColumnJournal) {
		assert.False(t, dataset.IsNA(journal), "journal %q is missing", journal)
	}
	for _, y := range column(t, out, types.ColumnYear) {
		year, err := strconv.Atoi(y)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, year, types.MinYear)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	input := writeRaw(t, sampleRaw)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")

	_, err := Clean(types.CleanerConfig{Input: input, Output: first}, io.Discard)
	require.NoError(t, err)
	_, err = Clean(types.CleanerConfig{Input: input, Output: second}, io.Discard)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCleanOverwritesExistingOutput(t *testing.T) {
	input := writeRaw(t, sampleRaw)
	output := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, os.WriteFile(output, []byte("stale,content\n1,2\n3,4\n5,6\n7,8\n"), 0o644))

	_, err := Clean(types.CleanerConfig{Input: input, Output: output}, io.Discard)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.True(t, strings.HasPrefix(string(data), "cord_uid,title,journal,publish_time,abstract,year\n"))
}

func TestCleanMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := types.CleanerConfig{
		Input:  filepath.Join(dir, "metadata_sample.csv"),
		Output: filepath.Join(dir, "cleaned.csv"),
	}

	_, err := Clean(cfg, io.Discard)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatasetNotFound))
	assert.Contains(t, err.Error(), "metadata_sample.csv")
	assert.NoFileExists(t, cfg.Output)
}

func TestCleanMissingColumn(t *testing.T) {
	cfg := types.CleanerConfig{
		Input:  writeRaw(t, "publish_time,title\n2020-01-01,Only Title\n"),
		Output: filepath.Join(t.TempDir(), "cleaned.csv"),
	}

	_, err := Clean(cfg, io.Discard)

	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrMissingColumn))
	assert.NoFileExists(t, cfg.Output)
}

func TestCleanReportsProgress(t *testing.T) {
	var buf bytes.Buffer
	cfg := types.CleanerConfig{
		Input:  writeRaw(t, sampleRaw),
		Output: filepath.Join(t.TempDir(), "cleaned.csv"),
	}

	_, err := Clean(cfg, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Loaded 9 rows")
	assert.Contains(t, buf.String(), "Saved 3 rows")
}

func TestTableDateTimeColumn(t *testing.T) {
	raw := &dataset.Table{
		Header: []string{"publish_time", "title", "journal"},
		Rows: [][]string{
			{"2020-03-01", "A", "J"},
			{"2021-06-15 08:30:00", "B", "J"},
		},
	}

	out, err := Table(raw)
	require.NoError(t, err)

	assert.Equal(t, "2020-03-01 00:00:00", out.Rows[0][0])
	assert.Equal(t, "2021-06-15 08:30:00", out.Rows[1][0])
}

func TestTableOverwritesExistingYearColumn(t *testing.T) {
	raw := &dataset.Table{
		Header: []string{"year", "publish_time", "title", "journal"},
		Rows: [][]string{
			{"1999", "2020-03-01", "A", "J"},
		},
	}

	out, err := Table(raw)
	require.NoError(t, err)

	assert.Equal(t, raw.Header, out.Header)
	assert.Equal(t, "2020", out.Rows[0][0])
}

func TestTableDoesNotModifyInput(t *testing.T) {
	raw := &dataset.Table{
		Header: []string{"publish_time", "title", "journal"},
		Rows:   [][]string{{"Mar 1, 2020", "A", "J"}},
	}

	_, err := Table(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"publish_time", "title", "journal"}, raw.Header)
	assert.Equal(t, "Mar 1, 2020", raw.Rows[0][0])
}
