package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fsstore "github.com/miriamsimone/video-generation-pipeline/pkg/adapters/fs"
	rediscache "github.com/miriamsimone/video-generation-pipeline/pkg/adapters/redis"
	"github.com/miriamsimone/video-generation-pipeline/pkg/adapters/rest"
	"github.com/miriamsimone/video-generation-pipeline/pkg/observability"
	"github.com/miriamsimone/video-generation-pipeline/pkg/ports"
)

// BuildStore assembles the configured sequence store: a directory
// store, optionally fronted by the Redis read-through cache.
func BuildStore(cfg StoreConfig) (ports.SequenceStore, error) {
	store, err := fsstore.NewStore(cfg.Dir)
	if err != nil {
		return nil, err
	}
	if cfg.Redis == nil {
		return store, nil
	}
	return rediscache.New(
		cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		store, rediscache.WithTTL(time.Duration(cfg.Redis.TTL)),
	), nil
}

// RunServe starts the sequence HTTP server and, if configured, the
// Prometheus scrape endpoint, until SIGINT/SIGTERM.
func RunServe(cfg ServeConfig, logger *slog.Logger) error {
	store, err := BuildStore(cfg.Store)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: metrics.InstrumentHandler(rest.NewHandler(store)),
	}

	serverErrors := make(chan error, 2)
	go func() {
		logger.Info("sequence server listening", "addr", srv.Addr, "dir", cfg.Store.Dir)
		serverErrors <- srv.ListenAndServe()
	}()

	var metricsSrv *http.Server
	if cfg.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{Addr: cfg.MetricsListen, Handler: mux}
		go func() {
			logger.Info("metrics listening", "addr", metricsSrv.Addr)
			serverErrors <- metricsSrv.ListenAndServe()
		}()
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "error", err)
			srv.Close()
		}
		if metricsSrv != nil {
			metricsSrv.Shutdown(ctx)
		}
	}
	return nil
}
