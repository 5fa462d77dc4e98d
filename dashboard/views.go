package dashboard

import (
	"net/http"
	"strings"

	"github.com/KimDantic/Worklog/analysis"
	"github.com/KimDantic/Worklog/importer"
	"github.com/KimDantic/Worklog/pipeline"
	"github.com/KimDantic/Worklog/worklog"
)

type recordView struct {
	SourceName  string   `json:"source_name"`
	SourceID    string   `json:"source_id"`
	CompositeID string   `json:"composite_id"`
	ID          string   `json:"id"`
	FullName    string   `json:"full_name"`
	Task        *string  `json:"task"`
	StartedAt   string   `json:"started_at"`
	Week        string   `json:"week"`
	Month       string   `json:"month"`
	Year        string   `json:"year"`
	YearMonth   string   `json:"year_month"`
	Minutes     *float64 `json:"minutes"`
	Hours       *float64 `json:"hours"`
	Tokens      []string `json:"tokens"`
	Categories  []string `json:"categories"`
}

type sourcesView struct {
	Found             int `json:"found"`
	Loaded            int `json:"loaded"`
	Skipped           int `json:"skipped"`
	RowsRead          int `json:"rows_read"`
	DateParseFailures int `json:"date_parse_failures"`
}

type recordsResponse struct {
	Total   int               `json:"total"`
	Records []recordView      `json:"records"`
	Sources sourcesView       `json:"sources"`
	Notices []importer.Notice `json:"notices"`
}

func newRecordView(record worklog.Record) recordView {
	view := recordView{
		SourceName:  record.SourceName,
		SourceID:    record.SourceID,
		CompositeID: record.CompositeID,
		ID:          record.EntryID,
		FullName:    record.FullName,
		StartedAt:   record.StartedAt.String(),
		Week:        record.Calendar.WeekLabel(),
		Month:       record.Calendar.MonthLabel(),
		Year:        record.Calendar.YearLabel(),
		YearMonth:   record.Calendar.YearMonthLabel(),
		Tokens:      nonNil(record.Tokens),
		Categories:  nonNil(record.Categories),
	}
	if record.TaskPresent {
		task := record.Task
		view.Task = &task
	}
	if record.Minutes.Known {
		minutes := record.Minutes.Value
		view.Minutes = &minutes
	}
	if record.Hours.Known {
		hours := record.Hours.Value
		view.Hours = &hours
	}
	return view
}

func newSourcesView(snapshot *pipeline.Snapshot) sourcesView {
	return sourcesView{
		Found:             snapshot.SourcesFound,
		Loaded:            snapshot.SourcesLoaded,
		Skipped:           snapshot.SourcesSkipped,
		RowsRead:          snapshot.RowsRead,
		DateParseFailures: snapshot.DateParseFailures,
	}
}

func noticesOf(snapshot *pipeline.Snapshot) []importer.Notice {
	if snapshot.Notices == nil {
		return []importer.Notice{}
	}
	return snapshot.Notices
}

// parseFilter reads category, from, to, search and name query parameters.
// category and name may repeat or hold comma-separated values.
func parseFilter(r *http.Request) (analysis.Filter, error) {
	query := r.URL.Query()
	from, err := analysis.ParseDay(query.Get("from"))
	if err != nil {
		return analysis.Filter{}, err
	}
	to, err := analysis.ParseDay(query.Get("to"))
	if err != nil {
		return analysis.Filter{}, err
	}
	return analysis.Filter{
		Categories: splitValues(query["category"]),
		From:       from,
		To:         to,
		Search:     query.Get("search"),
		Names:      trimValues(query["name"]),
	}, nil
}

// trimValues keeps each repeated value whole; names may contain commas.
func trimValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}

// splitValues accepts repeated and comma-separated values.
func splitValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
