package importer

import (
	"github.com/KimDantic/Worklog/worklog"
)

// Enrich returns a copy of table with identity, name, time and duration
// fields derived from the raw cells.
func Enrich(table worklog.Table) worklog.Table {
	out := worklog.Table{
		Columns: append([]string(nil), table.Columns...),
		Records: make([]worklog.Record, len(table.Records)),
	}
	for i, record := range table.Records {
		out.Records[i] = enrichRecord(record)
	}
	return out
}

func enrichRecord(record worklog.Record) worklog.Record {
	record.EntryID = record.Text(worklog.ColumnID)
	record.CompositeID = record.SourceID + "-" + record.EntryID

	record.UserFirstName = record.Text(worklog.ColumnFirstName)
	record.UserLastName = record.Text(worklog.ColumnLastName)
	record.FullName = record.UserFirstName + " " + record.UserLastName

	record.Task, record.TaskPresent = record.Value(worklog.ColumnTask)

	record.StartedAt = worklog.Timestamp{}
	if raw, ok := record.Value(worklog.ColumnStartedAt); ok {
		if parsed, err := parseTimestamp(raw); err == nil {
			record.StartedAt = worklog.Timestamp{Time: parsed, Known: true}
		}
	}
	record.Calendar = worklog.CalendarOf(record.StartedAt)

	record.Minutes = worklog.Quantity{}
	record.Hours = worklog.Quantity{}
	if raw, ok := record.Value(worklog.ColumnMinutes); ok {
		if minutes, err := parseMinutes(raw); err == nil {
			record.Minutes = worklog.Quantity{Value: minutes, Known: true}
			record.Hours = worklog.Quantity{Value: minutes / 60, Known: true}
		}
	}
	return record
}

// dateParseFailure reports a started_at cell that is present but unparseable.
func dateParseFailure(record worklog.Record) bool {
	_, present := record.Value(worklog.ColumnStartedAt)
	return present && !record.StartedAt.Known
}
