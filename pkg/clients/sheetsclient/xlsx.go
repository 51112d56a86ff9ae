package sheetsclient

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/escalas/pkg/core/roster"
)

// XLSXSheetName returns the worksheet name used by WriteXLSX. Excel does not
// allow '/' in sheet names, so the ISO week start is used instead of TabTitle.
func XLSXSheetName(weekStart string) string {
	return "Escala " + weekStart
}

// WriteXLSX writes the same rows RosterPublisher sends to Google Sheets as a
// single-sheet workbook, for sharing a roster without a spreadsheet account.
func WriteXLSX(w io.Writer, view *roster.WeekView) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := XLSXSheetName(view.WeekStart)
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := RosterRows(view)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
