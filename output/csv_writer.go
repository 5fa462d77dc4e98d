package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/KimDantic/Worklog/worklog"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, table worklog.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	if err := w.Encode(file, table); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close csv output %s: %w", path, err)
	}
	return nil
}

// Encode writes table as CSV to out.
func (w *CSVWriter) Encode(out io.Writer, table worklog.Table) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(Headers(table)); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	extras := extraColumns(table)
	for _, record := range table.Records {
		if err := writer.Write(Row(record, extras)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
