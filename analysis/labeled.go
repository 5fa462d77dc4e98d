package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KimDantic/Worklog/worklog"
)

const (
	DefaultTextColumn  = "Issue"
	DefaultLabelColumn = "Category"
)

var ErrMissingRequiredColumns = errors.New("missing required columns")

type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingRequiredColumns
}

type LabeledExample struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// LabeledDataset extracts (text, label) pairs from two raw columns. Absent
// cells become "nan". Nothing is returned unless both columns exist.
func LabeledDataset(table worklog.Table, textColumn, labelColumn string) ([]LabeledExample, error) {
	missing := make([]string, 0, 2)
	for _, column := range []string{textColumn, labelColumn} {
		if !table.HasColumn(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	out := make([]LabeledExample, 0, table.Len())
	for _, record := range table.Records {
		out = append(out, LabeledExample{
			Text:  record.Text(textColumn),
			Label: record.Text(labelColumn),
		})
	}
	return out, nil
}
