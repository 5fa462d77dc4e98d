package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the counters exported by the dashboard process.
type Metrics struct {
	Builds         *prometheus.CounterVec
	BuildDuration  prometheus.Histogram
	SourcesSkipped prometheus.Counter
	RowsIngested   prometheus.Counter
	Requests       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worklog_builds_total",
				Help: "Table builds by outcome (hit, miss, error)",
			},
			[]string{"outcome"},
		),
		BuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "worklog_build_duration_seconds",
				Help:    "Time taken to ingest and categorize a file set",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),
		SourcesSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "worklog_sources_skipped_total",
				Help: "Sources skipped because they failed to parse",
			},
		),
		RowsIngested: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "worklog_rows_ingested_total",
				Help: "Rows ingested across all uncached builds",
			},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worklog_http_requests_total",
				Help: "Dashboard API requests by route and status",
			},
			[]string{"route", "status"},
		),
	}

	reg.MustRegister(
		m.Builds,
		m.BuildDuration,
		m.SourcesSkipped,
		m.RowsIngested,
		m.Requests,
	)

	return m
}
