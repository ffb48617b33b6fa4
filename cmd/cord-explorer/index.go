// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/internal/index"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the SQLite index of cleaned records (store, query)",
	Long: `Index keeps the cleaned dataset in a local SQLite database for ad-hoc
queries. Use "store" to (re)build it from the cleaned CSV and "query" to
filter records by year, journal or title text.`,
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Load the cleaned CSV into the index",
	Long: `Store reads cleaned_cord_metadata.csv and replaces the records held in
index/cord.db in a single transaction.`,
	Args: cobra.NoArgs,
	PreRunE: bindFlags(map[string]string{
		"explorer.dataset": "data",
		"index.dir":        "index-dir",
	}),
	RunE: runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	path := viper.GetString("explorer.dataset")
	records, err := dataset.Load(path)
	if err != nil {
		return err
	}

	store, err := index.NewStore(indexConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(context.Background(), path, records, os.Stdout)
	return err
}

// --- query subcommand ---

var indexQueryCmd = &cobra.Command{
	Use:   "query [title text]",
	Short: "Query indexed records",
	Long: `Query lists indexed records filtered by --year, --journal and title
text. Title matching is a case-insensitive substring match.`,
	PreRunE: bindFlags(map[string]string{
		"index.dir":         "index-dir",
		"index.max_results": "max-results",
	}),
	RunE: runIndexQuery,
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	year, _ := cmd.Flags().GetInt("year")
	journal, _ := cmd.Flags().GetString("journal")
	limit, _ := cmd.Flags().GetInt("limit")

	results, err := store.Query(context.Background(), index.QueryOptions{
		Year:          year,
		Journal:       journal,
		TitleContains: strings.Join(args, " "),
		MaxResults:    limit,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []types.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-50s  %s\n", "Year", "Published", "Title", "Journal")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		published := ""
		if !r.PublishTime.IsZero() {
			published = r.PublishTime.Format(dataset.DateLayout)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-50s  %s\n", r.Year, published, title, r.Journal)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- shared helpers ---

func indexConfig() types.IndexConfig {
	return types.IndexConfig{
		Dir:        viper.GetString("index.dir"),
		MaxResults: viper.GetInt("index.max_results"),
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", types.DefaultIndexDir, "directory holding cord.db")

	// Store flags.
	indexStoreCmd.Flags().String("data", types.DefaultCleanedDataset, "cleaned CSV produced by clean")

	// Query flags.
	indexQueryCmd.Flags().Int("year", 0, "filter by publication year")
	indexQueryCmd.Flags().String("journal", "", "filter by journal name")
	indexQueryCmd.Flags().Int("max-results", 20, "default maximum number of results")
	indexQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Wire subcommands.
	indexCmd.AddCommand(indexStoreCmd)
	indexCmd.AddCommand(indexQueryCmd)

	rootCmd.AddCommand(indexCmd)
}
