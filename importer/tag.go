package importer

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/KimDantic/Worklog/worklog"
)

// Batch holds the tagged rows of one source.
type Batch struct {
	Name    string
	Columns []string
	Records []worklog.Record
}

// DeriveSourceID returns the third dash-delimited segment of the file's base
// name, extension included, or "Unknown" when there are fewer than three.
func DeriveSourceID(name string) string {
	parts := strings.Split(filepath.Base(name), "-")
	if len(parts) < 3 {
		return worklog.UnknownSourceID
	}
	return parts[2]
}

// LoadAndTag parses one source and tags each row with its origin.
func LoadAndTag(name string, r io.Reader, reader Reader) (*Batch, error) {
	sheet, err := reader.Read(r)
	if err != nil {
		return nil, &SourceParseError{Name: name, Err: err}
	}

	sourceName := filepath.Base(name)
	sourceID := DeriveSourceID(sourceName)
	batch := &Batch{
		Name:    sourceName,
		Columns: sheet.Columns,
		Records: make([]worklog.Record, 0, len(sheet.Rows)),
	}
	for _, row := range sheet.Rows {
		batch.Records = append(batch.Records, worklog.Record{
			SourceName: sourceName,
			SourceID:   sourceID,
			RowNumber:  row.RowNumber,
			Values:     row.Values,
		})
	}
	return batch, nil
}

// Combine concatenates batches in order. Columns are the union of every
// batch's columns in first-seen order.
func Combine(batches []*Batch) worklog.Table {
	total := 0
	for _, batch := range batches {
		total += len(batch.Records)
	}

	table := worklog.Table{Records: make([]worklog.Record, 0, total)}
	seen := make(map[string]struct{}, 16)
	for _, batch := range batches {
		for _, column := range batch.Columns {
			if _, ok := seen[column]; ok {
				continue
			}
			seen[column] = struct{}{}
			table.Columns = append(table.Columns, column)
		}
		table.Records = append(table.Records, batch.Records...)
	}
	return table
}
