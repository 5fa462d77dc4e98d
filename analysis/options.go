package analysis

import (
	"sort"

	"github.com/KimDantic/Worklog/worklog"
)

// CategoryOptions returns every category present in table, sorted.
func CategoryOptions(table worklog.Table) []string {
	return uniqueSorted(table, func(record worklog.Record) []string {
		return record.Categories
	})
}

// NameOptions returns every full name present in table, sorted.
func NameOptions(table worklog.Table) []string {
	return uniqueSorted(table, func(record worklog.Record) []string {
		return []string{record.FullName}
	})
}

func uniqueSorted(table worklog.Table, values func(worklog.Record) []string) []string {
	seen := make(map[string]struct{}, 16)
	out := make([]string, 0, 16)
	for _, record := range table.Records {
		for _, value := range values(record) {
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			out = append(out, value)
		}
	}
	sort.Strings(out)
	return out
}
