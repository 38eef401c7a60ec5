package convert

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the conversion counters exposed on the optional metrics
// endpoint during watch mode.
type Metrics struct {
	registry *prometheus.Registry

	UnitsProcessed     prometheus.Counter
	UnitErrors         prometheus.Counter
	RecordsProcessed   prometheus.Counter
	RecordErrors       prometheus.Counter
	NodesEmitted       prometheus.Counter
	ValidationFailures prometheus.Counter
}

// NewMetrics creates and registers the conversion counters on a private
// registry, so parallel test converters never collide.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		UnitsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ucograph_units_processed_total",
			Help: "Input units converted and written successfully.",
		}),
		UnitErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ucograph_unit_errors_total",
			Help: "Input units that failed to convert.",
		}),
		RecordsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ucograph_records_processed_total",
			Help: "Media records assembled into graph nodes.",
		}),
		RecordErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ucograph_record_errors_total",
			Help: "Media records skipped for structural problems.",
		}),
		NodesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ucograph_nodes_emitted_total",
			Help: "Graph nodes written to output documents.",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ucograph_validation_failures_total",
			Help: "Output documents rejected by the external validator.",
		}),
	}
	reg.MustRegister(m.UnitsProcessed, m.UnitErrors, m.RecordsProcessed,
		m.RecordErrors, m.NodesEmitted, m.ValidationFailures)
	return m
}

// Handler returns the HTTP handler serving the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs a metrics HTTP server on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
