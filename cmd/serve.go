package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KimDantic/Worklog/config"
	"github.com/KimDantic/Worklog/dashboard"
	"github.com/KimDantic/Worklog/internal/metrics"
	"github.com/KimDantic/Worklog/pipeline"
	"github.com/KimDantic/Worklog/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard JSON API",
	Long: `Start a local HTTP server exposing the enriched worklog table, its filters and
aggregations as JSON, plus Prometheus metrics on /metrics.

Builds are cached per input fingerprint. For directory sources the directory is
watched and the cache is dropped on every change; POST /api/reload does the same
for any source.`,
	Example: `
  # Start on the configured port
  worklog serve

  # Custom port, no directory watch
  worklog serve --port 9090 --no-watch
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(registry)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := newRuntime(ctx, cfg, m)
		if err != nil {
			return err
		}
		defer rt.close()

		if root, ok := watchRoot(rt.src, cfg.Serve.Watch, serveNoWatch); ok {
			go func() {
				if err := pipeline.Watch(ctx, root, rt.builder, rt.log); err != nil {
					rt.log.Warn("directory watch stopped", "error", err)
				}
			}()
		}

		port := resolveServePort(servePort, cfg.Serve.Port)
		server := &http.Server{
			Addr: fmt.Sprintf(":%d", port),
			Handler: dashboard.NewServer(rt.builder, dashboard.Options{
				TopK:     cfg.Words.TopK,
				Logger:   rt.log,
				Metrics:  m,
				Gatherer: registry,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on http://localhost:%d\n", port)
		rt.log.Info("dashboard started", "port", port, "source_kind", cfg.Source.Kind)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			rt.log.Info("dashboard stopped")
			return nil
		}
	},
}

func resolveServePort(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

// watchRoot returns the local directory to watch for changes. Remote sources
// have nothing local to watch.
func watchRoot(src source.Source, watch, noWatch bool) (string, bool) {
	dir, ok := src.(*source.Dir)
	if !ok || !watch || noWatch {
		return "", false
	}
	return dir.Root(), true
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port for the dashboard API (default: serve.port from config)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Do not watch the source directory for changes")
}
