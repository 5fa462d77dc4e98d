package analysis

import (
	"sort"

	"github.com/KimDantic/Worklog/worklog"
)

type ColumnCount struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// MissingValues counts absent or empty cells per raw column. Columns with no
// missing cells are left out; the rest are ordered by count, highest first.
func MissingValues(table worklog.Table) []ColumnCount {
	out := make([]ColumnCount, 0, len(table.Columns))
	for _, column := range table.Columns {
		missing := 0
		for _, record := range table.Records {
			if _, ok := record.Value(column); !ok {
				missing++
			}
		}
		if missing > 0 {
			out = append(out, ColumnCount{Column: column, Missing: missing})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Missing > out[j].Missing
	})
	return out
}
