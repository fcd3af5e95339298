package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/gambit/pkg/adapters/http"
	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/observability"
	"github.com/aretw0/gambit/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// NewHandler builds the session API with Prometheus metrics on /metrics.
func NewHandler(cfg Config, sessions *session.Manager, reg *prometheus.Registry, logger *slog.Logger) (http.Handler, error) {
	def, err := LoadDefinition(cfg.ChartPath)
	if err != nil {
		return nil, err
	}
	compiled, err := chart.Compile(def)
	if err != nil {
		return nil, err
	}
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	hooks := metrics.Hooks()
	if cfg.Debug {
		hooks = observability.Combine(hooks, observability.LoggingHooks(logger))
	}

	srv, err := httpAdapter.NewServer(sessions,
		httpAdapter.WithChart(compiled),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithLifecycleHooks(hooks),
	)
	if err != nil {
		return nil, err
	}
	router := srv.Router()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return router, nil
}

// RunServe serves the session API until ctx is done.
func RunServe(ctx context.Context, cfg Config, out io.Writer) error {
	logger := createLogger(cfg)
	sessions, closeStore, err := openSessions(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	handler, err := NewHandler(cfg, sessions, prometheus.NewRegistry(), logger)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Serving gambit on %s", cfg.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		printSystemMessage(out, "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		printSystemMessage(out, "Server stopped gracefully")
		return nil
	}
}
