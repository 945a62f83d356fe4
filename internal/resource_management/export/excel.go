package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/eplus-at/eplus-resources/internal/resource_management/domain"
	"github.com/eplus-at/eplus-resources/internal/resource_management/report"
)

// Workbook sheet names.
const (
	SheetMaterials     = "Materials"
	SheetConstructions = "Constructions"
	SheetValidation    = "Validation"
)

// ValidationColumns heads the validation sheet.
var ValidationColumns = []string{"Issue Type", "Details"}

// IssuesTable flattens issues into one row per finding, in category order.
func IssuesTable(issues domain.Issues) [][]string {
	out := [][]string{ValidationColumns}
	for _, c := range domain.IssueCategories {
		for _, msg := range issues[c] {
			out = append(out, []string{string(c), msg})
		}
	}
	return out
}

// WriteExcel writes the material and construction tables plus the
// validation findings to a three-sheet workbook at path.
func WriteExcel(path string, materials, constructions report.Table, issues domain.Issues) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetMaterials); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetConstructions, SheetValidation} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	sheets := []struct {
		name    string
		records [][]string
	}{
		{SheetMaterials, materials.Records()},
		{SheetConstructions, constructions.Records()},
		{SheetValidation, IssuesTable(issues)},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.records, header); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, records [][]string, headerStyle int) error {
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(rec))
		for j, v := range rec {
			values[j] = cellValue(v, i == 0)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}

	if len(records) == 0 || len(records[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(records[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(records[0]))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 22)
}

// cellValue stores numeric cells as numbers so spreadsheets can sort and
// chart them.
func cellValue(v string, header bool) interface{} {
	if header || v == "" {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}
