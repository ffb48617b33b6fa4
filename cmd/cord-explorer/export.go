package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cord-explorer/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the explorer views for a year to a file",
	Long: `Export writes the three explorer views for the selected year to an Excel
workbook (one sheet per view), YAML or JSON. The format follows the output
file extension unless --format is given.`,
	Args:    cobra.NoArgs,
	PreRunE: bindFlags(withExplorerKeys(nil)),
	RunE:    runExport,
}

func init() {
	addExplorerFlags(exportCmd)
	exportCmd.Flags().Int("year", 0, "selected year (0 = default year)")
	exportCmd.Flags().String("output", "views.xlsx", "file to write")
	exportCmd.Flags().String("format", "", "export format: xlsx, yaml or json (default: from --output extension)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	formatFlag, _ := cmd.Flags().GetString("format")

	format := export.Format(formatFlag)
	if format == "" {
		var err error
		if format, err = export.FormatFromPath(output); err != nil {
			return err
		}
	}

	e := newExplorer(explorerConfig())
	year, err := resolveYear(cmd, e)
	if err != nil {
		return err
	}
	v, err := e.Views(year)
	if err != nil {
		return err
	}

	if err := export.Write(output, format, v); err != nil {
		return err
	}
	fmt.Printf("Exported views for %d to %s\n", year, output)
	return nil
}
