package timeutil

import "time"

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

// EndOfDay returns the last representable instant of value's day.
func EndOfDay(value time.Time) time.Time {
	return StartOfDay(value).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// WeekStart returns midnight of the Monday that opens value's ISO week.
func WeekStart(value time.Time) time.Time {
	offset := (int(value.Weekday()) + 6) % 7
	return StartOfDay(value).AddDate(0, 0, -offset)
}
