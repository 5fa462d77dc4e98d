// Package dashboard serves the worklog table and its aggregations as JSON.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KimDantic/Worklog/analysis"
	"github.com/KimDantic/Worklog/internal/logger"
	"github.com/KimDantic/Worklog/internal/metrics"
	"github.com/KimDantic/Worklog/output"
	"github.com/KimDantic/Worklog/pipeline"
	"github.com/KimDantic/Worklog/taxonomy"
	"github.com/KimDantic/Worklog/worklog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultRecordLimit = 100
	exportFileName     = "filtered_data.csv"
)

// SnapshotBuilder is satisfied by *pipeline.Builder.
type SnapshotBuilder interface {
	Build(ctx context.Context) (*pipeline.Snapshot, error)
	Invalidate()
	Taxonomy() *taxonomy.Taxonomy
}

type Options struct {
	TopK     int
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

type Server struct {
	builder  SnapshotBuilder
	topK     int
	log      *logger.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	router   chi.Router
}

func NewServer(builder SnapshotBuilder, options Options) *Server {
	s := &Server{
		builder:  builder,
		topK:     options.TopK,
		log:      options.Logger,
		metrics:  options.Metrics,
		gatherer: options.Gatherer,
		router:   chi.NewRouter(),
	}
	if s.topK <= 0 {
		s.topK = 20
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(s.observe)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/records", s.handleRecords)
		r.Get("/words", s.handleWords)
		r.Get("/categories", s.handleCategories)
		r.Get("/names", s.handleNames)
		r.Get("/hours", s.handleHours)
		r.Get("/entries", s.handleEntries)
		r.Get("/timeline", s.handleTimeline)
		r.Get("/missing", s.handleMissing)
		r.Get("/labeled", s.handleLabeled)
		r.Get("/export.csv", s.handleExport)
		r.Post("/reload", s.handleReload)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if s.metrics != nil {
			s.metrics.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		}
		s.log.Debug("request served",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(started).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	snapshot, filtered, ok := s.filtered(w, r)
	if !ok {
		return
	}

	limit := defaultRecordLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = parsed
	}

	records := make([]recordView, 0, min(limit, filtered.Len()))
	for i, record := range filtered.Records {
		if i >= limit {
			break
		}
		records = append(records, newRecordView(record))
	}

	writeJSON(w, http.StatusOK, recordsResponse{
		Total:   filtered.Len(),
		Records: records,
		Sources: newSourcesView(snapshot),
		Notices: noticesOf(snapshot),
	})
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	k := s.topK
	if raw := strings.TrimSpace(r.URL.Query().Get("k")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid k %q", raw))
			return
		}
		k = parsed
	}

	_, filtered, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": analysis.TopWords(filtered, k)})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	tax := s.builder.Taxonomy()
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": analysis.CategoryOptions(snapshot.Table),
		"taxonomy":   tax.Names(),
		"fallback":   tax.Fallback(),
	})
}

func (s *Server) handleNames(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"names": analysis.NameOptions(snapshot.Table)})
}

func (s *Server) handleHours(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	_, filtered, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"period": period, "rows": analysis.HoursByPeriod(filtered, period)})
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	_, filtered, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"period": period, "rows": analysis.UniqueEntriesByPeriod(filtered, period)})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	_, filtered, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"period": period, "rows": analysis.EntriesOverTime(filtered, period)})
}

func (s *Server) handleMissing(w http.ResponseWriter, r *http.Request) {
	_, filtered, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"columns": analysis.MissingValues(filtered)})
}

func (s *Server) handleLabeled(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	textColumn := firstNonEmpty(query.Get("text"), analysis.DefaultTextColumn)
	labelColumn := firstNonEmpty(query.Get("label"), analysis.DefaultLabelColumn)

	examples, err := analysis.LabeledDataset(snapshot.Table, textColumn, labelColumn)
	if err != nil {
		if errors.Is(err, analysis.ErrMissingRequiredColumns) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"examples": examples})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	_, filtered, ok := s.filtered(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName))
	if err := (&output.CSVWriter{}).Encode(w, filtered); err != nil {
		s.log.Error("export failed", "error", err)
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.builder.Invalidate()
	snapshot, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":    snapshot.Table.Len(),
		"sources": newSourcesView(snapshot),
		"notices": noticesOf(snapshot),
	})
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*pipeline.Snapshot, bool) {
	snapshot, err := s.builder.Build(r.Context())
	if err != nil {
		s.log.Error("build failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return snapshot, true
}

func (s *Server) filtered(w http.ResponseWriter, r *http.Request) (*pipeline.Snapshot, worklog.Table, bool) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, worklog.Table{}, false
	}
	snapshot, ok := s.snapshot(w, r)
	if !ok {
		return nil, worklog.Table{}, false
	}
	if filter.IsZero() {
		return snapshot, snapshot.Table, true
	}
	return snapshot, filter.Apply(snapshot.Table), true
}

func parsePeriod(w http.ResponseWriter, r *http.Request) (analysis.Period, bool) {
	period, err := analysis.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", false
	}
	return period, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
