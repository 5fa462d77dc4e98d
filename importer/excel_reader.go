package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads the first sheet of a workbook.
type ExcelReader struct{}

func (r *ExcelReader) Read(input io.Reader) (*Sheet, error) {
	file, err := excelize.OpenReader(input)
	if err != nil {
		return nil, fmt.Errorf("open excel workbook: %w", err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("excel workbook has no sheets")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheetName)
	}

	sheet := &Sheet{Columns: normalizeHeaders(rows[0]), Rows: make([]Row, 0, len(rows)-1)}
	for i, cells := range rows[1:] {
		sheet.Rows = append(sheet.Rows, Row{RowNumber: i + 2, Values: rowValues(sheet.Columns, cells)})
	}

	return sheet, nil
}
