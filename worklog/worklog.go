package worklog

import (
	"strconv"
	"time"
)

const (
	// Unknown is rendered for every derived value that could not be computed.
	Unknown = "unknown"
	// Missing is the literal an absent cell turns into once it is stringified.
	Missing = "nan"
	// UnknownSourceID is used for file names without a third dash-delimited segment.
	UnknownSourceID = "Unknown"
)

// Column names fixed by the worklog export convention.
const (
	ColumnID        = "id"
	ColumnFirstName = "user_first_name"
	ColumnLastName  = "user_last_name"
	ColumnTask      = "task"
	ColumnStartedAt = "started_at"
	ColumnMinutes   = "minutes"
)

// Timestamp is a leniently parsed start time. Known is false when the raw
// value was absent or could not be parsed.
type Timestamp struct {
	Time  time.Time
	Known bool
}

func (t Timestamp) String() string {
	if !t.Known {
		return Unknown
	}
	return t.Time.Format(time.RFC3339)
}

// Calendar holds the calendar parts derived from a Timestamp.
type Calendar struct {
	Known     bool
	Week      int
	Month     int
	Year      int
	YearMonth string
}

// CalendarOf derives the ISO week, month, year and year-month of ts.
// Every part carries the unknown marker when ts is unknown.
func CalendarOf(ts Timestamp) Calendar {
	if !ts.Known {
		return Calendar{}
	}
	_, week := ts.Time.ISOWeek()
	return Calendar{
		Known:     true,
		Week:      week,
		Month:     int(ts.Time.Month()),
		Year:      ts.Time.Year(),
		YearMonth: ts.Time.Format("2006-01"),
	}
}

func (c Calendar) WeekLabel() string {
	return c.label(c.Week)
}

func (c Calendar) MonthLabel() string {
	return c.label(c.Month)
}

func (c Calendar) YearLabel() string {
	return c.label(c.Year)
}

func (c Calendar) YearMonthLabel() string {
	if !c.Known {
		return Unknown
	}
	return c.YearMonth
}

func (c Calendar) label(value int) string {
	if !c.Known {
		return Unknown
	}
	return strconv.Itoa(value)
}

// Quantity is a numeric cell that may be absent or unparseable.
type Quantity struct {
	Value float64
	Known bool
}

func (q Quantity) String() string {
	if !q.Known {
		return Unknown
	}
	return strconv.FormatFloat(q.Value, 'f', -1, 64)
}

// Record is one worklog row after ingestion. Records are never mutated once
// a table has been built; derived tables copy the struct.
type Record struct {
	SourceName    string
	SourceID      string
	RowNumber     int
	EntryID       string
	CompositeID   string
	UserFirstName string
	UserLastName  string
	FullName      string
	Task          string
	TaskPresent   bool
	StartedAt     Timestamp
	Calendar      Calendar
	Minutes       Quantity
	Hours         Quantity
	Tokens        []string
	Categories    []string

	// Values holds every raw cell of the source row. Absent cells have no key.
	Values map[string]string
}

// Value returns the raw cell for column and whether it is present.
// Empty cells count as absent.
func (r Record) Value(column string) (string, bool) {
	value, ok := r.Values[column]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Text returns the raw cell for column, or Missing when it is absent.
func (r Record) Text(column string) string {
	if value, ok := r.Value(column); ok {
		return value
	}
	return Missing
}

func (r Record) HasCategory(name string) bool {
	for _, category := range r.Categories {
		if category == name {
			return true
		}
	}
	return false
}

// Table is an ordered set of records plus the union of their raw columns in
// first-seen order.
type Table struct {
	Columns []string
	Records []Record
}

func (t Table) Len() int {
	return len(t.Records)
}

func (t Table) HasColumn(name string) bool {
	for _, column := range t.Columns {
		if column == name {
			return true
		}
	}
	return false
}

// Select returns a new table holding the records accepted by keep, in order.
func (t Table) Select(keep func(Record) bool) Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]Record, 0, len(t.Records)),
	}
	for _, record := range t.Records {
		if keep(record) {
			out.Records = append(out.Records, record)
		}
	}
	return out
}
