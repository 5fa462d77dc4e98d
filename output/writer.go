package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KimDantic/Worklog/worklog"
)

// Columns written before the remaining raw columns of a table.
var derivedColumns = []string{
	"source_name",
	"source_id",
	"composite_id",
	worklog.ColumnID,
	"full_name",
	worklog.ColumnTask,
	worklog.ColumnStartedAt,
	"week",
	"month",
	"year",
	"year_month",
	worklog.ColumnMinutes,
	"hours",
	"tokens",
	"categories",
}

type Writer interface {
	Write(path string, table worklog.Table) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatForPath infers an output format from the file extension of path.
func FormatForPath(path string) (string, error) {
	switch normalizeFormat(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "csv":
		return "csv", nil
	case "xlsx":
		return "excel", nil
	case "db", "sqlite", "sqlite3":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("cannot infer output format from %s", path)
	}
}

// Headers returns the derived columns followed by every raw column of table
// not already among them.
func Headers(table worklog.Table) []string {
	headers := append([]string(nil), derivedColumns...)
	return append(headers, extraColumns(table)...)
}

// Row renders record under Headers(table). extras must be extraColumns(table).
func Row(record worklog.Record, extras []string) []string {
	row := []string{
		record.SourceName,
		record.SourceID,
		record.CompositeID,
		record.EntryID,
		record.FullName,
		record.Text(worklog.ColumnTask),
		record.StartedAt.String(),
		record.Calendar.WeekLabel(),
		record.Calendar.MonthLabel(),
		record.Calendar.YearLabel(),
		record.Calendar.YearMonthLabel(),
		record.Minutes.String(),
		record.Hours.String(),
		strings.Join(record.Tokens, " "),
		strings.Join(record.Categories, ";"),
	}
	for _, column := range extras {
		row = append(row, record.Values[column])
	}
	return row
}

func extraColumns(table worklog.Table) []string {
	fixed := make(map[string]struct{}, len(derivedColumns))
	for _, column := range derivedColumns {
		fixed[column] = struct{}{}
	}
	extras := make([]string, 0, len(table.Columns))
	for _, column := range table.Columns {
		if _, ok := fixed[column]; ok {
			continue
		}
		extras = append(extras, column)
	}
	return extras
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
