package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord-explorer/internal/clean"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the raw metadata CSV for the explorer",
	Long: `Clean reads metadata_sample.csv, parses publish_time leniently, drops rows
without a valid date, title or journal, adds a year column, keeps papers
from 2019 onward and writes cleaned_cord_metadata.csv. An existing output
file is replaced.`,
	Args: cobra.NoArgs,
	PreRunE: bindFlags(map[string]string{
		"cleaner.input":  "input",
		"cleaner.output": "output",
	}),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().String("input", types.DefaultRawDataset, "raw metadata CSV")
	cleanCmd.Flags().String("output", types.DefaultCleanedDataset, "cleaned CSV to write")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg := types.CleanerConfig{
		Input:  viper.GetString("cleaner.input"),
		Output: viper.GetString("cleaner.output"),
	}
	_, err := clean.Clean(cfg, os.Stdout)
	return err
}
