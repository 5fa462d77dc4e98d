package analysis

import (
	"testing"
	"time"

	"github.com/KimDantic/Worklog/worklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordFixture struct {
	id         string
	name       string
	task       string
	started    string
	hours      float64
	tokens     []string
	categories []string
}

func buildRecord(f recordFixture) worklog.Record {
	record := worklog.Record{
		SourceID:    "1.csv",
		EntryID:     f.id,
		CompositeID: "1.csv-" + f.id,
		FullName:    f.name,
		Task:        f.task,
		TaskPresent: f.task != "",
		Tokens:      f.tokens,
		Categories:  f.categories,
		Values:      map[string]string{worklog.ColumnID: f.id, worklog.ColumnTask: f.task},
	}
	if f.started != "" {
		parsed, err := time.Parse(time.RFC3339, f.started)
		if err != nil {
			panic(err)
		}
		record.StartedAt = worklog.Timestamp{Time: parsed, Known: true}
		record.Values[worklog.ColumnStartedAt] = f.started
	}
	record.Calendar = worklog.CalendarOf(record.StartedAt)
	if f.hours > 0 {
		record.Hours = worklog.Quantity{Value: f.hours, Known: true}
	}
	return record
}

func sampleTable() worklog.Table {
	fixtures := []recordFixture{
		{id: "1", name: "Ada L", task: "Fixed login bug", started: "2024-01-01T09:00:00Z", hours: 1, tokens: []string{"fixed", "login", "bug"}, categories: []string{"actions", "errors", "miscellaneous"}},
		{id: "2", name: "Ada L", task: "Database review", started: "2024-01-03T09:00:00Z", hours: 2, tokens: []string{"database", "review"}, categories: []string{"miscellaneous", "technology"}},
		{id: "3", name: "Bob K", task: "Team meeting", started: "2024-02-10T09:00:00Z", hours: 0.5, tokens: []string{"team", "meeting"}, categories: []string{"meetings"}},
		{id: "3", name: "Bob K", task: "Team meeting follow-up", started: "2024-02-12T09:00:00Z", hours: 0.5, tokens: []string{"team", "meeting", "followup"}, categories: []string{"meetings", "miscellaneous"}},
		{id: "4", name: "nan nan", task: "", tokens: []string{"nan"}, categories: []string{"miscellaneous"}},
	}
	table := worklog.Table{Columns: []string{worklog.ColumnID, worklog.ColumnTask, worklog.ColumnStartedAt}}
	for _, fixture := range fixtures {
		table.Records = append(table.Records, buildRecord(fixture))
	}
	return table
}

func TestTopWords_TieBreakByFirstAppearance(t *testing.T) {
	t.Parallel()

	got := TopWords(sampleTable(), 4)
	want := []WordCount{
		{Word: "team", Count: 2},
		{Word: "meeting", Count: 2},
		{Word: "fixed", Count: 1},
		{Word: "login", Count: 1},
	}
	assert.Equal(t, want, got)
	assert.Empty(t, TopWords(sampleTable(), 0))
	assert.Len(t, TopWords(sampleTable(), 100), 9)
}

func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	day := func(value string) time.Time {
		parsed, err := ParseDay(value)
		require.NoError(t, err)
		return parsed
	}

	tests := []struct {
		name   string
		filter Filter
		ids    []string
	}{
		{name: "zero filter keeps all", filter: Filter{}, ids: []string{"1", "2", "3", "3", "4"}},
		{name: "any category", filter: Filter{Categories: []string{"errors", "technology"}}, ids: []string{"1", "2"}},
		{name: "inclusive days", filter: Filter{From: day("2024-01-03"), To: day("2024-02-10")}, ids: []string{"2", "3"}},
		{name: "only from", filter: Filter{From: day("2024-02-11")}, ids: []string{"3"}},
		{name: "search ignores case", filter: Filter{Search: "MEETING"}, ids: []string{"3", "3"}},
		{name: "search never matches absent task", filter: Filter{Search: "nan"}, ids: []string{}},
		{name: "names", filter: Filter{Names: []string{"Ada L"}}, ids: []string{"1", "2"}},
		{name: "combined", filter: Filter{Names: []string{"Bob K"}, Search: "follow"}, ids: []string{"3"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := tc.filter.Apply(table)
			ids := make([]string, 0, out.Len())
			for _, record := range out.Records {
				ids = append(ids, record.EntryID)
			}
			assert.Equal(t, tc.ids, ids)
		})
	}

	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Search: "x"}.IsZero())
	assert.Equal(t, 5, table.Len())
}

func TestParseDay(t *testing.T) {
	t.Parallel()

	got, err := ParseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDay("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDay("29.02.2024")
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	assert.Equal(t, []string{"actions", "errors", "meetings", "miscellaneous", "technology"}, CategoryOptions(table))
	assert.Equal(t, []string{"Ada L", "Bob K", "nan nan"}, NameOptions(table))
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Period{"": PeriodYear, "Week": PeriodWeek, "month": PeriodMonth, "YEAR": PeriodYear} {
		got, err := ParsePeriod(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePeriod("quarter")
	assert.Error(t, err)
}

func TestHoursByPeriod(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	assert.Equal(t, []HoursRow{
		{Period: "1", FullName: "Ada L", Hours: 3},
		{Period: "2", FullName: "Bob K", Hours: 1},
	}, HoursByPeriod(table, PeriodMonth))

	assert.Equal(t, []HoursRow{
		{Period: "1", FullName: "Ada L", Hours: 3},
		{Period: "6", FullName: "Bob K", Hours: 0.5},
		{Period: "7", FullName: "Bob K", Hours: 0.5},
	}, HoursByPeriod(table, PeriodWeek))

	assert.Equal(t, []HoursRow{
		{Period: "2024", FullName: "Ada L", Hours: 3},
		{Period: "2024", FullName: "Bob K", Hours: 1},
	}, HoursByPeriod(table, PeriodYear))
}

func TestUniqueEntriesByPeriod(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	assert.Equal(t, []PeriodCount{
		{Period: "2024-01", Count: 2},
		{Period: "2024-02", Count: 1},
	}, UniqueEntriesByPeriod(table, PeriodMonth))
	assert.Equal(t, []PeriodCount{{Period: "2024", Count: 3}}, UniqueEntriesByPeriod(table, PeriodYear))
}

func TestEntriesOverTime(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	assert.Equal(t, []TimelineRow{
		{Bucket: "2024-01-01", FullName: "Ada L", Count: 2},
		{Bucket: "2024-02-05", FullName: "Bob K", Count: 1},
		{Bucket: "2024-02-12", FullName: "Bob K", Count: 1},
	}, EntriesOverTime(table, PeriodWeek))

	assert.Equal(t, []TimelineRow{
		{Bucket: "January", FullName: "Ada L", Count: 2},
		{Bucket: "February", FullName: "Bob K", Count: 2},
	}, EntriesOverTime(table, PeriodMonth))
}

func TestMissingValues(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	table.Columns = append(table.Columns, "comment")
	assert.Equal(t, []ColumnCount{
		{Column: "comment", Missing: 5},
		{Column: worklog.ColumnTask, Missing: 1},
		{Column: worklog.ColumnStartedAt, Missing: 1},
	}, MissingValues(table))
}

func TestLabeledDataset(t *testing.T) {
	t.Parallel()

	table := worklog.Table{
		Columns: []string{"Issue", "Category"},
		Records: []worklog.Record{
			{Values: map[string]string{"Issue": "Login fails", "Category": "bug"}},
			{Values: map[string]string{"Issue": "Add dark mode"}},
		},
	}
	got, err := LabeledDataset(table, DefaultTextColumn, DefaultLabelColumn)
	require.NoError(t, err)
	assert.Equal(t, []LabeledExample{
		{Text: "Login fails", Label: "bug"},
		{Text: "Add dark mode", Label: "nan"},
	}, got)

	_, err = LabeledDataset(sampleTable(), DefaultTextColumn, worklog.ColumnTask)
	require.ErrorIs(t, err, ErrMissingRequiredColumns)
	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"Issue"}, missing.Columns)
}
