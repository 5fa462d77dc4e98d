package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KimDantic/Worklog/internal/logger"
	"github.com/KimDantic/Worklog/source"
	"github.com/KimDantic/Worklog/worklog"
)

type NoticeKind string

const (
	NoticeNoSources        NoticeKind = "no_sources"
	NoticeSourceParseError NoticeKind = "source_parse_error"
	NoticeDateParseFailure NoticeKind = "date_parse_failure"
)

// Notice is a non-fatal ingestion problem surfaced to the caller.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Source  string     `json:"source,omitempty"`
	Message string     `json:"message"`
}

type Result struct {
	Table             worklog.Table
	SourcesFound      int
	SourcesLoaded     int
	SourcesSkipped    int
	RowsRead          int
	DateParseFailures int
	Notices           []Notice
}

type RunOptions struct {
	// Reader overrides the per-extension reader choice.
	Reader Reader
	Logger *logger.Logger
}

// Run discovers every source, loads them one at a time, and returns the
// combined and enriched table. Missing sources and unparseable files are
// reported as notices, never as errors.
func Run(ctx context.Context, src source.Source, options RunOptions) (*Result, error) {
	log := options.Logger
	if log == nil {
		log = logger.Nop()
	}

	locations, err := src.Discover(ctx)
	if err != nil {
		if errors.Is(err, source.ErrNoSourcesFound) {
			log.Warn("no worklog sources found", "error", err)
			return NoSources(err), nil
		}
		return nil, fmt.Errorf("discover sources: %w", err)
	}

	return Load(ctx, src, locations, options)
}

// NoSources returns the empty result for a source set with nothing in it.
func NoSources(cause error) *Result {
	message := "no worklog files found"
	if cause != nil {
		message = cause.Error()
	}
	return &Result{
		Notices: []Notice{{Kind: NoticeNoSources, Message: message}},
	}
}

// Load ingests the given locations in order.
func Load(ctx context.Context, src source.Source, locations []source.Location, options RunOptions) (*Result, error) {
	log := options.Logger
	if log == nil {
		log = logger.Nop()
	}

	result := &Result{SourcesFound: len(locations)}
	if len(locations) == 0 {
		return NoSources(nil), nil
	}

	batches := make([]*Batch, 0, len(locations))
	for _, loc := range locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, err := loadOne(ctx, src, loc, options.Reader)
		if err != nil {
			result.SourcesSkipped++
			result.Notices = append(result.Notices, Notice{
				Kind:    NoticeSourceParseError,
				Source:  loc.Name,
				Message: err.Error(),
			})
			log.Warn("skipping unreadable source", "source", loc.Name, "error", err)
			continue
		}

		result.SourcesLoaded++
		result.RowsRead += len(batch.Records)
		batches = append(batches, batch)
		log.Debug("loaded source", "source", loc.Name, "rows", len(batch.Records))
	}

	result.Table = Enrich(Combine(batches))

	failedRows := make(map[string][]string, len(batches))
	for _, record := range result.Table.Records {
		if dateParseFailure(record) {
			failedRows[record.SourceName] = append(failedRows[record.SourceName], strconv.Itoa(record.RowNumber))
			result.DateParseFailures++
		}
	}
	for _, batch := range batches {
		rows := failedRows[batch.Name]
		if len(rows) == 0 {
			continue
		}
		result.Notices = append(result.Notices, Notice{
			Kind:    NoticeDateParseFailure,
			Source:  batch.Name,
			Message: fmt.Sprintf("%d started_at value(s) could not be parsed (rows %s)", len(rows), strings.Join(rows, ", ")),
		})
	}

	return result, nil
}

func loadOne(ctx context.Context, src source.Source, loc source.Location, override Reader) (*Batch, error) {
	reader := override
	if reader == nil {
		var err error
		reader, err = ReaderForName(loc.Name)
		if err != nil {
			return nil, &SourceParseError{Name: loc.Name, Err: err}
		}
	}

	rc, err := src.Open(ctx, loc)
	if err != nil {
		return nil, &SourceParseError{Name: loc.Name, Err: err}
	}
	defer rc.Close()

	return LoadAndTag(loc.Name, rc, reader)
}
