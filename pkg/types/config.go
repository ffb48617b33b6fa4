package types

// Fixed file names shared by the cleaner and the explorer.
const (
	DefaultRawDataset     = "metadata_sample.csv"
	DefaultCleanedDataset = "cleaned_cord_metadata.csv"
	DefaultYear           = 2020
	DefaultListenAddr     = ":8501"
	DefaultIndexDir       = "index"
)

// CleanerConfig holds settings for the cleaning stage.
type CleanerConfig struct {
	// Input is the raw metadata CSV (default metadata_sample.csv).
	Input string `json:"input" yaml:"input"`

	// Output is the cleaned CSV, overwritten on each run
	// (default cleaned_cord_metadata.csv).
	Output string `json:"output" yaml:"output"`
}

// ExplorerConfig holds settings for the dashboard.
type ExplorerConfig struct {
	// Dataset is the cleaned CSV produced by the cleaner.
	Dataset string `json:"dataset" yaml:"dataset"`

	// Addr is the HTTP listen address (default :8501).
	Addr string `json:"addr" yaml:"addr"`

	// DefaultYear is the initial selected year, clamped into the
	// dataset's observed year range (default 2020).
	DefaultYear int `json:"default_year" yaml:"default_year"`

	// TopJournals is the number of journals in the top journals view (default 10).
	TopJournals int `json:"top_journals" yaml:"top_journals"`

	// MaxWords is the number of words kept for the word cloud (default 100).
	MaxWords int `json:"max_words" yaml:"max_words"`

	// LogLevel is the slog level name: debug, info, warn or error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// IndexConfig holds settings for the SQLite record index.
type IndexConfig struct {
	// Dir is the directory holding cord.db (default index).
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
