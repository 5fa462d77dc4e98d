package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KimDantic/Worklog/internal/timeutil"
	"github.com/KimDantic/Worklog/worklog"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod accepts week, month or year in any case. Empty means year.
func ParsePeriod(value string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(PeriodYear):
		return PeriodYear, nil
	case string(PeriodMonth):
		return PeriodMonth, nil
	case string(PeriodWeek):
		return PeriodWeek, nil
	default:
		return "", fmt.Errorf("unsupported period %q (expected week, month or year)", value)
	}
}

type HoursRow struct {
	Period   string  `json:"period"`
	FullName string  `json:"full_name"`
	Hours    float64 `json:"hours"`
}

type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

type TimelineRow struct {
	Bucket   string `json:"bucket"`
	FullName string `json:"full_name"`
	Count    int    `json:"count"`
}

type groupKey struct {
	label string
	order int64
	name  string
}

// HoursByPeriod sums known hours per (period, full name). Records without a
// start time are dropped.
func HoursByPeriod(table worklog.Table, period Period) []HoursRow {
	sums := make(map[groupKey]float64, 16)
	for _, record := range table.Records {
		if !record.Calendar.Known {
			continue
		}
		key := calendarKey(record.Calendar, period)
		key.name = record.FullName
		if _, ok := sums[key]; !ok {
			sums[key] = 0
		}
		if record.Hours.Known {
			sums[key] += record.Hours.Value
		}
	}

	keys := sortedKeys(sums)
	rows := make([]HoursRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, HoursRow{Period: key.label, FullName: key.name, Hours: sums[key]})
	}
	return rows
}

// UniqueEntriesByPeriod counts distinct composite ids per period. Month
// buckets are year-months.
func UniqueEntriesByPeriod(table worklog.Table, period Period) []PeriodCount {
	entries := make(map[groupKey]map[string]struct{}, 16)
	for _, record := range table.Records {
		if !record.Calendar.Known {
			continue
		}
		key := calendarKey(record.Calendar, period)
		if period == PeriodMonth {
			key = groupKey{label: record.Calendar.YearMonth, order: int64(record.Calendar.Year*100 + record.Calendar.Month)}
		}
		if entries[key] == nil {
			entries[key] = make(map[string]struct{}, 8)
		}
		entries[key][record.CompositeID] = struct{}{}
	}

	keys := sortedKeys(entries)
	rows := make([]PeriodCount, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, PeriodCount{Period: key.label, Count: len(entries[key])})
	}
	return rows
}

// EntriesOverTime counts rows per (bucket, full name). Week buckets are the
// Monday the week starts on, month buckets are English month names ordered
// by month number.
func EntriesOverTime(table worklog.Table, period Period) []TimelineRow {
	counts := make(map[groupKey]int, 16)
	for _, record := range table.Records {
		if !record.StartedAt.Known {
			continue
		}
		started := record.StartedAt.Time
		var key groupKey
		switch period {
		case PeriodWeek:
			start := timeutil.WeekStart(started)
			key = groupKey{label: start.Format(dayLayout), order: start.Unix()}
		case PeriodMonth:
			key = groupKey{label: started.Month().String(), order: int64(started.Month())}
		default:
			key = groupKey{label: strconv.Itoa(started.Year()), order: int64(started.Year())}
		}
		key.name = record.FullName
		counts[key]++
	}

	keys := sortedKeys(counts)
	rows := make([]TimelineRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, TimelineRow{Bucket: key.label, FullName: key.name, Count: counts[key]})
	}
	return rows
}

func calendarKey(calendar worklog.Calendar, period Period) groupKey {
	switch period {
	case PeriodWeek:
		return groupKey{label: calendar.WeekLabel(), order: int64(calendar.Week)}
	case PeriodMonth:
		return groupKey{label: calendar.MonthLabel(), order: int64(calendar.Month)}
	default:
		return groupKey{label: calendar.YearLabel(), order: int64(calendar.Year)}
	}
}

func sortedKeys[V any](groups map[groupKey]V) []groupKey {
	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].order != keys[j].order {
			return keys[i].order < keys[j].order
		}
		if keys[i].label != keys[j].label {
			return keys[i].label < keys[j].label
		}
		return keys[i].name < keys[j].name
	})
	return keys
}
