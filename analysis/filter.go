package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/KimDantic/Worklog/internal/timeutil"
	"github.com/KimDantic/Worklog/worklog"
)

const dayLayout = "2006-01-02"

// Filter narrows a table. Zero-valued fields do not filter.
type Filter struct {
	// Categories keeps records carrying any of the listed categories.
	Categories []string
	// From and To bound StartedAt by whole calendar day, both inclusive.
	From time.Time
	To   time.Time
	// Search is a case-insensitive substring match on the raw task text.
	Search string
	// Names keeps records whose full name is listed.
	Names []string
}

func (f Filter) IsZero() bool {
	return len(f.Categories) == 0 && f.From.IsZero() && f.To.IsZero() && strings.TrimSpace(f.Search) == "" && len(f.Names) == 0
}

// Apply returns a new table with the records that pass every set condition.
func (f Filter) Apply(table worklog.Table) worklog.Table {
	names := make(map[string]struct{}, len(f.Names))
	for _, name := range f.Names {
		names[name] = struct{}{}
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var from, to time.Time
	if !f.From.IsZero() {
		from = timeutil.StartOfDay(f.From)
	}
	if !f.To.IsZero() {
		to = timeutil.EndOfDay(f.To)
	}

	return table.Select(func(record worklog.Record) bool {
		if len(f.Categories) > 0 && !hasAnyCategory(record, f.Categories) {
			return false
		}
		if !from.IsZero() || !to.IsZero() {
			if !record.StartedAt.Known {
				return false
			}
			started := record.StartedAt.Time
			if !from.IsZero() && started.Before(from) {
				return false
			}
			if !to.IsZero() && started.After(to) {
				return false
			}
		}
		if search != "" {
			if !record.TaskPresent || !strings.Contains(strings.ToLower(record.Task), search) {
				return false
			}
		}
		if len(names) > 0 {
			if _, ok := names[record.FullName]; !ok {
				return false
			}
		}
		return true
	})
}

func hasAnyCategory(record worklog.Record, categories []string) bool {
	for _, category := range categories {
		if record.HasCategory(category) {
			return true
		}
	}
	return false
}

// ParseDay parses a YYYY-MM-DD day in UTC. An empty value is the zero time.
func ParseDay(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.ParseInLocation(dayLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", value, err)
	}
	return parsed, nil
}
