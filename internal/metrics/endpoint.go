package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// NewHandler serves the registry in the Prometheus text format.
func NewHandler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	return mux
}

// Serve runs the metrics endpoint until ctx is done.
func Serve(ctx context.Context, addr string, registry *prometheus.Registry) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("[Metrics] Shutdown failed", slog.String("error", err.Error()))
		}
	}()

	slog.Info("[Metrics] Endpoint starting", slog.String("address", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("[Metrics] HTTP server error", slog.String("error", err.Error()))
		return err
	}
	return nil
}
