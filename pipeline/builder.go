// Package pipeline runs ingestion and categorization as one build and
// memoizes the result per input fingerprint.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KimDantic/Worklog/importer"
	"github.com/KimDantic/Worklog/internal/logger"
	"github.com/KimDantic/Worklog/internal/metrics"
	"github.com/KimDantic/Worklog/source"
	"github.com/KimDantic/Worklog/taxonomy"
	"github.com/KimDantic/Worklog/textproc"
	"github.com/KimDantic/Worklog/worklog"
)

// Snapshot is the immutable outcome of one build.
type Snapshot struct {
	Fingerprint       uint64
	Table             worklog.Table
	Notices           []importer.Notice
	SourcesFound      int
	SourcesLoaded     int
	SourcesSkipped    int
	RowsRead          int
	DateParseFailures int
	BuiltAt           time.Time
}

type Options struct {
	Source source.Source
	Text   *textproc.Pipeline
	// TextIdentity names the taxonomy and stopword configuration; it is part
	// of the cache key.
	TextIdentity string
	CacheSize    int
	Logger       *logger.Logger
	Metrics      *metrics.Metrics
}

type Builder struct {
	source       source.Source
	text         *textproc.Pipeline
	textIdentity string
	cache        *Cache
	log          *logger.Logger
	metrics      *metrics.Metrics
	now          func() time.Time

	buildMu sync.Mutex
}

func NewBuilder(options Options) (*Builder, error) {
	if options.Source == nil {
		return nil, errors.New("pipeline source is required")
	}
	text := options.Text
	if text == nil {
		var err error
		text, err = textproc.New(nil, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("build text pipeline: %w", err)
		}
	}
	log := options.Logger
	if log == nil {
		log = logger.Nop()
	}
	cache, err := NewCache(options.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Builder{
		source:       options.Source,
		text:         text,
		textIdentity: options.TextIdentity,
		cache:        cache,
		log:          log,
		metrics:      options.Metrics,
		now:          time.Now,
	}, nil
}

// Build returns the snapshot for the current file set, reusing a cached one
// when neither the files nor the text configuration changed. Builds run one
// at a time.
func (b *Builder) Build(ctx context.Context) (*Snapshot, error) {
	b.buildMu.Lock()
	defer b.buildMu.Unlock()

	started := b.now()
	locations, err := b.source.Discover(ctx)
	if err != nil && !errors.Is(err, source.ErrNoSourcesFound) {
		b.observe("error", started)
		return nil, fmt.Errorf("discover sources: %w", err)
	}
	noSources := err

	key := Fingerprint(locations, b.textIdentity)
	if snapshot, ok := b.cache.Get(key); ok {
		b.log.Debug("snapshot cache hit", "fingerprint", key)
		b.observe("hit", started)
		return snapshot, nil
	}

	var result *importer.Result
	if noSources != nil {
		b.log.Warn("no worklog sources found", "error", noSources)
		result = importer.NoSources(noSources)
	} else {
		result, err = importer.Load(ctx, b.source, locations, importer.RunOptions{Logger: b.log})
		if err != nil {
			b.observe("error", started)
			return nil, fmt.Errorf("load sources: %w", err)
		}
	}

	snapshot := &Snapshot{
		Fingerprint:       key,
		Table:             b.text.Apply(result.Table),
		Notices:           result.Notices,
		SourcesFound:      result.SourcesFound,
		SourcesLoaded:     result.SourcesLoaded,
		SourcesSkipped:    result.SourcesSkipped,
		RowsRead:          result.RowsRead,
		DateParseFailures: result.DateParseFailures,
		BuiltAt:           b.now(),
	}
	b.cache.Add(key, snapshot)

	if b.metrics != nil {
		b.metrics.SourcesSkipped.Add(float64(result.SourcesSkipped))
		b.metrics.RowsIngested.Add(float64(result.RowsRead))
	}
	b.observe("miss", started)
	b.log.Info("built worklog snapshot",
		"fingerprint", key,
		"sources", result.SourcesLoaded,
		"skipped", result.SourcesSkipped,
		"rows", result.RowsRead,
		"cached", b.cache.Len(),
	)
	return snapshot, nil
}

// Invalidate drops every cached snapshot.
func (b *Builder) Invalidate() {
	dropped := b.cache.Len()
	b.cache.Purge()
	b.log.Debug("snapshot cache invalidated", "dropped", dropped)
}

// Taxonomy returns the taxonomy records are categorized with.
func (b *Builder) Taxonomy() *taxonomy.Taxonomy {
	return b.text.Taxonomy()
}

func (b *Builder) observe(outcome string, started time.Time) {
	if b.metrics == nil {
		return
	}
	b.metrics.Builds.WithLabelValues(outcome).Inc()
	b.metrics.BuildDuration.Observe(b.now().Sub(started).Seconds())
}
