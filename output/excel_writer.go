package output

import (
	"fmt"

	"github.com/KimDantic/Worklog/worklog"
	"github.com/xuri/excelize/v2"
)

const (
	worklogSheet    = "worklog"
	wordCountsSheet = "words"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, table worklog.Table) error {
	rows := make([][]string, 0, table.Len())
	extras := extraColumns(table)
	for _, record := range table.Records {
		rows = append(rows, Row(record, extras))
	}
	return writeExcel(path, worklogSheet, Headers(table), rows)
}

// writeExcel writes a single-sheet workbook with a bold, frozen header row.
func writeExcel(path, sheetName string, headers []string, rows [][]string) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name excel sheet: %w", err)
	}

	if err := file.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write excel header: %w", err)
	}
	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := file.SetCellStyle(sheetName, "A1", last, bold); err != nil {
			return fmt.Errorf("style excel header: %w", err)
		}
	}
	if err := file.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze excel header: %w", err)
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := file.SetSheetRow(sheetName, cell, &rows[i]); err != nil {
			return fmt.Errorf("write excel row %d: %w", i+2, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}
