package obs

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/blog-auth-server/internal/logger"
)

// BootstrapMetricsServer serves /metrics from gatherer and /healthz from
// health in a background goroutine.
func BootstrapMetricsServer(addr string, gatherer prometheus.Gatherer, health func(context.Context) error, l *logger.Logger) *http.Server {
	ms := createMetricsServer(addr, gatherer, health)

	go func() {
		l.Info("Metrics server: listening", "addr", addr)
		if err := ms.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Metrics server: stopped with error", "error", err.Error())
		}
	}()

	return ms
}

func createMetricsServer(addr string, gatherer prometheus.Gatherer, health func(context.Context) error) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := health(ctx); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}
