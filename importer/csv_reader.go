package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVReader reads comma-separated exports with a header row. A UTF-8 or
// UTF-16 byte order mark is honored and stripped. Short rows leave the
// trailing columns absent; a row longer than the header is an error.
type CSVReader struct{}

func (r *CSVReader) Read(input io.Reader) (*Sheet, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(input, decoder))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: missing header row")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	sheet := &Sheet{Columns: normalizeHeaders(headers), Rows: make([]Row, 0, 128)}
	rowNumber := 1
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNumber+1, err)
		}
		rowNumber++
		if len(cells) > len(sheet.Columns) {
			return nil, fmt.Errorf("read csv row %d: expected %d fields, got %d", rowNumber, len(sheet.Columns), len(cells))
		}

		sheet.Rows = append(sheet.Rows, Row{RowNumber: rowNumber, Values: rowValues(sheet.Columns, cells)})
	}

	return sheet, nil
}
