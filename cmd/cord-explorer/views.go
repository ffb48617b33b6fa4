// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cord-explorer/internal/explore"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Print the explorer views for a year",
	Long: `Views prints the three explorer views without starting the dashboard:
papers per year, the top journals of the selected year, and the most
frequent title words of that year. The year defaults to 2020, clamped
into the dataset's year range.`,
	Args:    cobra.NoArgs,
	PreRunE: bindFlags(withExplorerKeys(nil)),
	RunE:    runViews,
}

func init() {
	addExplorerFlags(viewsCmd)
	viewsCmd.Flags().Int("year", 0, "selected year (0 = default year)")
	viewsCmd.Flags().String("format", "table", "output format: table, json or yaml")

	rootCmd.AddCommand(viewsCmd)
}

// resolveYear returns the selected year: the flag value if set, otherwise
// the dataset's default year.
func resolveYear(cmd *cobra.Command, e *explore.Explorer) (int, error) {
	bounds, err := e.Bounds()
	if err != nil {
		return 0, err
	}
	sel := explore.NewSelection(bounds)
	if year, _ := cmd.Flags().GetInt("year"); year != 0 {
		if err := sel.Set(year); err != nil {
			return 0, err
		}
	}
	return sel.Year(), nil
}

func runViews(cmd *cobra.Command, args []string) error {
	e := newExplorer(explorerConfig())
	year, err := resolveYear(cmd, e)
	if err != nil {
		return err
	}
	v, err := e.Views(year)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "":
		printViews(os.Stdout, v)
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q: use table, json or yaml", format)
	}
}

func printViews(w io.Writer, v types.Views) {
	fmt.Fprintln(w, "Publications by year")
	fmt.Fprintf(w, "%-6s  %s\n", "Year", "Papers")
	fmt.Fprintln(w, strings.Repeat("-", 16))
	for _, yc := range v.Yearly {
		fmt.Fprintf(w, "%-6d  %d\n", yc.Year, yc.Count)
	}

	fmt.Fprintf(w, "\nTop journals in %d\n", v.Year)
	if len(v.Journals) == 0 {
		fmt.Fprintln(w, "No papers.")
	}
	for i, jc := range v.Journals {
		journal := jc.Journal
		if len(journal) > 50 {
			journal = journal[:47] + "..."
		}
		fmt.Fprintf(w, "%2d. %-50s  %d\n", i+1, journal, jc.Count)
	}

	fmt.Fprintf(w, "\nTitle words in %d\n", v.Year)
	if len(v.Words) == 0 {
		fmt.Fprintln(w, "No titles.")
		return
	}
	parts := make([]string, len(v.Words))
	for i, wc := range v.Words {
		parts[i] = fmt.Sprintf("%s (%d)", wc.Word, wc.Count)
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
