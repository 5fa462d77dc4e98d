package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/KimDantic/Worklog/config"
	"github.com/KimDantic/Worklog/internal/logger"
	"github.com/KimDantic/Worklog/internal/metrics"
	"github.com/KimDantic/Worklog/lemma"
	"github.com/KimDantic/Worklog/pipeline"
	"github.com/KimDantic/Worklog/source"
	"github.com/KimDantic/Worklog/stopwords"
	"github.com/KimDantic/Worklog/taxonomy"
	"github.com/KimDantic/Worklog/textproc"
)

const builtinText = "builtin"

// runtime bundles what every command needs to run a build.
type runtime struct {
	cfg     *config.Config
	log     *logger.Logger
	src     source.Source
	text    *textproc.Pipeline
	builder *pipeline.Builder
}

func newRuntime(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*runtime, error) {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, err
	}

	text, identity, err := buildTextPipeline(cfg.Text)
	if err != nil {
		return nil, err
	}

	src, err := source.New(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}

	builder, err := pipeline.NewBuilder(pipeline.Options{
		Source:       src,
		Text:         text,
		TextIdentity: identity,
		CacheSize:    cfg.Serve.CacheSize,
		Logger:       log.With("source_kind", cfg.Source.Kind),
		Metrics:      m,
	})
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, log: log, src: src, text: text, builder: builder}, nil
}

func (r *runtime) close() {
	r.log.Sync()
}

// buildTextPipeline loads the configured taxonomy and stopwords, falling back
// to the built-in ones, and returns an identity string that changes whenever
// either file changes.
func buildTextPipeline(cfg config.TextConfig) (*textproc.Pipeline, string, error) {
	tax, err := loadTaxonomy(cfg)
	if err != nil {
		return nil, "", err
	}

	stop := stopwords.English()
	if path := strings.TrimSpace(cfg.StopwordsFile); path != "" {
		loaded, err := stopwords.Load(path)
		if err != nil {
			return nil, "", err
		}
		stop = loaded
	}

	lemmatizer, err := lemma.NewEnglish()
	if err != nil {
		return nil, "", err
	}

	text, err := textproc.New(stop, lemmatizer, tax)
	if err != nil {
		return nil, "", err
	}
	identity := fmt.Sprintf("taxonomy=%s;stopwords=%s", fileIdentity(cfg.TaxonomyFile), fileIdentity(cfg.StopwordsFile))
	return text, identity, nil
}

func loadTaxonomy(cfg config.TextConfig) (*taxonomy.Taxonomy, error) {
	path := strings.TrimSpace(cfg.TaxonomyFile)
	if path == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.LoadYAML(path)
}

func fileIdentity(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return builtinText
	}
	info, err := os.Stat(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s@%d:%d", path, info.Size(), info.ModTime().UnixNano())
}
