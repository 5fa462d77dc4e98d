package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/KimDantic/Worklog/worklog"
)

func sampleTable() worklog.Table {
	started := worklog.Timestamp{Time: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), Known: true}
	return worklog.Table{
		Records: []worklog.Record{
			{
				SourceName: "w-a-1.csv", SourceID: "1.csv", EntryID: "1", CompositeID: "1.csv-1", FullName: "Ada L",
				Task: "Fixed bug", TaskPresent: true, StartedAt: started, Calendar: worklog.CalendarOf(started),
				Minutes: worklog.Quantity{Value: 90, Known: true}, Hours: worklog.Quantity{Value: 1.5, Known: true},
				Tokens: []string{"fixed", "bug"}, Categories: []string{"actions", "errors"},
			},
			{
				SourceName: "w-a-1.csv", SourceID: "1.csv", EntryID: "2", CompositeID: "1.csv-2", FullName: "Ada L",
				Tokens: []string{"bug", "meeting", "meeting"}, Categories: []string{"errors", "meetings"},
			},
		},
	}
}

func TestSQLiteStore_SaveSnapshotReplacesContents(t *testing.T) {
	t.Parallel()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "worklog_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	for i := 0; i < 2; i++ {
		written, err := store.SaveSnapshot(sampleTable())
		if err != nil {
			t.Fatalf("save snapshot %d: %v", i, err)
		}
		if written != 2 {
			t.Fatalf("expected 2 written records, got %d", written)
		}
	}

	count, err := store.CountRecords()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected snapshot to replace previous rows, got %d records", count)
	}

	categories, err := store.CategoryCounts()
	if err != nil {
		t.Fatalf("category counts: %v", err)
	}
	if len(categories) != 3 || categories[0] != (CategoryCount{Category: "errors", Records: 2}) {
		t.Fatalf("unexpected category counts: %+v", categories)
	}
}

func TestSQLiteStore_TopTokens(t *testing.T) {
	t.Parallel()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "worklog_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveSnapshot(sampleTable()); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	tokens, err := store.TopTokens(3)
	if err != nil {
		t.Fatalf("top tokens: %v", err)
	}
	want := []TokenCount{{Token: "bug", Count: 2}, {Token: "meeting", Count: 2}, {Token: "fixed", Count: 1}}
	if len(tokens) != len(want) {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: want %+v, got %+v", i, want[i], tokens[i])
		}
	}
}

func TestSQLiteStore_UnknownMarkers(t *testing.T) {
	t.Parallel()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "worklog_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveSnapshot(sampleTable()); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	var startedAt, week, hours, task string
	err = store.db.QueryRow(`SELECT started_at, week, CAST(hours AS TEXT), task FROM records WHERE composite_id = ?;`, "1.csv-2").Scan(&startedAt, &week, &hours, &task)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if startedAt != worklog.Unknown || week != worklog.Unknown || hours != worklog.Unknown || task != worklog.Missing {
		t.Fatalf("unexpected markers: started=%q week=%q hours=%q task=%q", startedAt, week, hours, task)
	}
}
