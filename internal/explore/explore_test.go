// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

func rec(year int, journal, title string) types.Record {
	return types.Record{Year: year, Journal: journal, Title: title}
}

func sampleRecords() []types.Record {
	return []types.Record{
		rec(2020, "A", "Covid Study"),
		rec(2019, "C", "Early Report"),
		rec(2020, "B", "Mask Policy"),
		rec(2021, "A", "Covid Test"),
		rec(2020, "A", "Vaccine Trial"),
		rec(2021, "D", "covid Trial"),
	}
}

// --- view A ---

func TestYearlyTotals(t *testing.T) {
	got := YearlyTotals(sampleRecords())

	assert.Equal(t, []types.YearCount{
		{Year: 2019, Count: 1},
		{Year: 2020, Count: 3},
		{Year: 2021, Count: 2},
	}, got)
}

func TestYearlyTotalsSumToRecordCount(t *testing.T) {
	records := sampleRecords()
	total := 0
	for _, yc := range YearlyTotals(records) {
		total += yc.Count
	}
	assert.Equal(t, len(records), total)
}

func TestYearlyTotalsEmpty(t *testing.T) {
	assert.Empty(t, YearlyTotals(nil))
}

// --- view B ---

func TestTopJournalsExample(t *testing.T) {
	records := []types.Record{
		rec(2020, "A", "x"),
		rec(2020, "B", "y"),
		rec(2020, "A", "z"),
	}

	got := TopJournals(records, 2020, 10)

	assert.Equal(t, []types.JournalCount{{Journal: "A", Count: 2}, {Journal: "B", Count: 1}}, got)
}

func TestTopJournalsTruncatesAndOrders(t *testing.T) {
	var records []types.Record
	for i := 0; i < 15; i++ {
		for j := 0; j <= i; j++ {
			records = append(records, rec(2020, fmt.Sprintf("J%02d", i), "t"))
		}
	}
	records = append(records, rec(2021, "Other", "t"))

	got := TopJournals(records, 2020, 10)

	require.Len(t, got, 10)
	assert.Equal(t, "J14", got[0].Journal)
	assert.Equal(t, 15, got[0].Count)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}
}

func TestTopJournalsTiesKeepFirstSeen(t *testing.T) {
	records := []types.Record{
		rec(2020, "Zeta", "t"),
		rec(2020, "Alpha", "t"),
		rec(2020, "Mid", "t"),
		rec(2020, "Mid", "t"),
	}

	got := TopJournals(records, 2020, 10)

	assert.Equal(t, []types.JournalCount{
		{Journal: "Mid", Count: 2},
		{Journal: "Zeta", Count: 1},
		{Journal: "Alpha", Count: 1},
	}, got)
}

func TestTopJournalsNoMatchingYear(t *testing.T) {
	assert.Empty(t, TopJournals(sampleRecords(), 2030, 10))
}

func TestTopJournalsDefaultSize(t *testing.T) {
	var records []types.Record
	for i := 0; i < 12; i++ {
		records = append(records, rec(2020, fmt.Sprintf("J%d", i), "t"))
	}
	assert.Len(t, TopJournals(records, 2020, 0), DefaultTopJournals)
}

// --- view C ---

func TestTitleWordsCaseInsensitive(t *testing.T) {
	got := TitleWords(sampleRecords(), 2021, 100)

	require.NotEmpty(t, got)
	assert.Equal(t, types.WordCount{Word: "covid", Count: 2}, got[0])
	assert.Contains(t, got, types.WordCount{Word: "test", Count: 1})
	assert.Contains(t, got, types.WordCount{Word: "trial", Count: 1})
}

func TestTitleWordsEmptyYear(t *testing.T) {
	got := TitleWords(sampleRecords(), 2030, 100)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWordFrequencies(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []types.WordCount
	}{
		{
			name: "empty text",
			text: "",
			want: []types.WordCount{},
		},
		{
			name: "drops stopwords and numbers",
			text: "the impact of covid 19 on the 2020 season",
			want: []types.WordCount{{Word: "impact", Count: 1}, {Word: "covid", Count: 1}, {Word: "season", Count: 1}},
		},
		{
			name: "drops single characters",
			text: "a b c virus",
			want: []types.WordCount{{Word: "virus", Count: 1}},
		},
		{
			name: "strips possessive",
			text: "patient's outcome patient",
			want: []types.WordCount{{Word: "patient", Count: 2}, {Word: "outcome", Count: 1}},
		},
		{
			name: "strips possessive before stopwords",
			text: "let's a's virus",
			want: []types.WordCount{{Word: "let", Count: 1}, {Word: "virus", Count: 1}},
		},
		{
			name: "folds plurals",
			text: "cases case cases illness",
			want: []types.WordCount{{Word: "case", Count: 3}, {Word: "illness", Count: 1}},
		},
		{
			name: "keeps plural without singular",
			text: "sars news",
			want: []types.WordCount{{Word: "sars", Count: 1}, {Word: "news", Count: 1}},
		},
		{
			name: "unicode words",
			text: "épidémie épidémie santé",
			want: []types.WordCount{{Word: "épidémie", Count: 2}, {Word: "santé", Count: 1}},
		},
		{
			name: "ties keep first occurrence",
			text: "beta alpha gamma alpha beta",
			want: []types.WordCount{{Word: "beta", Count: 2}, {Word: "alpha", Count: 2}, {Word: "gamma", Count: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordFrequencies(tt.text, 100))
		})
	}
}

func TestWordFrequenciesCap(t *testing.T) {
	var words []string
	for i := 0; i < 150; i++ {
		words = append(words, fmt.Sprintf("word%c%c", 'a'+i/26, 'a'+i%26))
	}

	got := WordFrequencies(strings.Join(words, " "), 100)

	assert.Len(t, got, 100)
	assert.Equal(t, "wordaa", got[0].Word)
}

// --- range and selection ---

func TestYearRange(t *testing.T) {
	lo, hi, ok := YearRange(sampleRecords())
	assert.True(t, ok)
	assert.Equal(t, 2019, lo)
	assert.Equal(t, 2021, hi)

	_, _, ok = YearRange(nil)
	assert.False(t, ok)
}

func TestNewBoundsClampsDefault(t *testing.T) {
	tests := []struct {
		name    string
		records []types.Record
		want    Bounds
	}{
		{"default inside", sampleRecords(), Bounds{Min: 2019, Max: 2021, Default: 2020}},
		{"default below range", []types.Record{rec(2022, "A", "t"), rec(2023, "A", "t")}, Bounds{Min: 2022, Max: 2023, Default: 2022}},
		{"default above range", []types.Record{rec(2019, "A", "t")}, Bounds{Min: 2019, Max: 2019, Default: 2019}},
		{"empty dataset", nil, Bounds{Min: 2020, Max: 2020, Default: 2020}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBounds(tt.records, 2020))
		})
	}
}

func TestSelection(t *testing.T) {
	s := NewSelection(Bounds{Min: 2019, Max: 2022, Default: 2020})
	assert.Equal(t, 2020, s.Year())

	require.NoError(t, s.Set(2022))
	assert.Equal(t, 2022, s.Year())

	err := s.Set(2023)
	assert.True(t, errors.Is(err, ErrYearOutOfRange))
	assert.Equal(t, 2022, s.Year())
}

// --- explorer ---

func writeCleaned(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cleaned_cord_metadata.csv")
	content := "publish_time,title,journal,year\n" +
		"2020-03-01,Covid Study,Nature,2020\n" +
		"2020-04-01,Covid Spread,Nature,2020\n" +
		"2020-05-01,Mask Policy,Lancet,2020\n" +
		"2022-01-01,Omicron Wave,Cell,2022\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExplorerViews(t *testing.T) {
	e := New(dataset.NewCache(writeCleaned(t)), types.ExplorerConfig{})

	b, err := e.Bounds()
	require.NoError(t, err)
	assert.Equal(t, Bounds{Min: 2020, Max: 2022, Default: 2020}, b)

	v, err := e.Views(2020)
	require.NoError(t, err)
	assert.Equal(t, 2020, v.Year)
	assert.Equal(t, []types.YearCount{{Year: 2020, Count: 3}, {Year: 2022, Count: 1}}, v.Yearly)
	assert.Equal(t, []types.JournalCount{{Journal: "Nature", Count: 2}, {Journal: "Lancet", Count: 1}}, v.Journals)
	assert.Equal(t, types.WordCount{Word: "covid", Count: 2}, v.Words[0])

	// 2021 is inside the range but has no records.
	journals, err := e.Journals(2021)
	require.NoError(t, err)
	assert.Empty(t, journals)
	words, err := e.Words(2021)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestExplorerRejectsYearOutsideRange(t *testing.T) {
	e := New(dataset.NewCache(writeCleaned(t)), types.ExplorerConfig{})

	_, err := e.Journals(2018)
	assert.ErrorIs(t, err, ErrYearOutOfRange)
	_, err = e.Words(2023)
	assert.ErrorIs(t, err, ErrYearOutOfRange)
}

func TestExplorerYearlyComputedOnce(t *testing.T) {
	e := New(dataset.NewCache(writeCleaned(t)), types.ExplorerConfig{})

	first, err := e.Yearly()
	require.NoError(t, err)
	second, err := e.Yearly()
	require.NoError(t, err)
	assert.Same(t, &first[0], &second[0])
}

func TestExplorerMissingDataset(t *testing.T) {
	e := New(dataset.NewCache(filepath.Join(t.TempDir(), "missing.csv")), types.ExplorerConfig{})

	err := e.Load()
	assert.ErrorIs(t, err, dataset.ErrCleanedDatasetNotFound)
	_, err = e.Views(2020)
	assert.ErrorIs(t, err, dataset.ErrCleanedDatasetNotFound)
}
