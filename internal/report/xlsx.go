package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/auctionreport/internal/domain/models"
	"github.com/guttosm/auctionreport/internal/format"
)

// SheetNames names the two spreadsheet tabs.
type SheetNames struct {
	Lots    string
	Summary string
}

var lotColumnWidths = []float64{10, 18, 16, 60, 18, 18, 18, 16}

// WriteXLSX renders r as a workbook with a detail sheet and a summary sheet.
//
// Behavior:
//   - One detail row per lot in report order.
//   - Money as "R$ 1.234,56", percentages as "12,50%".
//   - Header rows bold on a shaded fill.
func WriteXLSX(w io.Writer, r models.Report, sheets SheetNames, loc format.Locale) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheets.Lots); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheets.Summary); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheets.Summary, err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	rows := make([][]interface{}, 0, len(r.Lots))
	for _, lot := range r.Lots {
		rows = append(rows, lotRow(lot, loc))
	}
	if err := writeSheet(f, sheets.Lots, lotHeaders, rows, header); err != nil {
		return err
	}
	for i, width := range lotColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheets.Lots, col, col, width); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}

	if err := writeSheet(f, sheets.Summary, summaryHeaders, summaryRows(r.Summary, loc), header); err != nil {
		return err
	}
	if err := f.SetColWidth(sheets.Summary, "A", "A", 42); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetColWidth(sheets.Summary, "B", "B", 20); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
