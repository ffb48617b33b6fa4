// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a snapshot of the dashboard views to disk as an
// Excel workbook, YAML or JSON.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// Format selects the export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Sheet names used in the workbook.
const (
	SheetYearly   = "Yearly"
	SheetJournals = "Journals"
	SheetWords    = "Words"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export file %q: use .xlsx, .yaml or .json", path)
	}
}

// Write exports v to path in the given format.
func Write(path string, format Format, v types.Views) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(path, v)
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return os.WriteFile(path, data, 0o644)
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return os.WriteFile(path, data, 0o644)
	default:
		return fmt.Errorf("unsupported format %q: use xlsx, yaml or json", format)
	}
}

// WriteXLSX writes one sheet per view. The journal and word sheets are
// titled with the selected year.
func WriteXLSX(path string, v types.Views) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetYearly); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	yearly := [][]any{{"Year", "Papers"}}
	for _, yc := range v.Yearly {
		yearly = append(yearly, []any{yc.Year, yc.Count})
	}
	if err := writeRows(f, SheetYearly, yearly); err != nil {
		return err
	}

	journals := [][]any{{fmt.Sprintf("Journal (%d)", v.Year), "Papers"}}
	for _, jc := range v.Journals {
		journals = append(journals, []any{jc.Journal, jc.Count})
	}
	if err := addSheet(f, SheetJournals, journals); err != nil {
		return err
	}

	words := [][]any{{fmt.Sprintf("Word (%d)", v.Year), "Frequency"}}
	for _, wc := range v.Words {
		words = append(words, []any{wc.Word, wc.Count})
	}
	if err := addSheet(f, SheetWords, words); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
