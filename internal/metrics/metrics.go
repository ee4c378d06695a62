package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Metrics wraps Prometheus collectors for kamreen.
type Metrics struct {
	registry           *prometheus.Registry
	alertsTotal        *prometheus.CounterVec
	ticksTotal         prometheus.Counter
	rejectedTotal      *prometheus.CounterVec
	effectErrorsTotal  *prometheus.CounterVec
	persistErrorsTotal prometheus.Counter
	countersRunning    prometheus.Gauge
	globalElapsed      prometheus.Gauge
	filterStartEvents  prometheus.Gauge
}

// New initializes a Metrics registry with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		alertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kamreen_alerts_total",
			Help: "Total alerts fired by kind.",
		}, []string{"kind"}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kamreen_ticks_total",
			Help: "Total clock ticks applied to the engine.",
		}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kamreen_intents_rejected_total",
			Help: "Total user intents rejected by operation.",
		}, []string{"op"}),
		effectErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kamreen_effect_errors_total",
			Help: "Total failed sound, haptic or notification effects.",
		}, []string{"effect"}),
		persistErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kamreen_persist_errors_total",
			Help: "Total failed snapshot writes.",
		}),
		countersRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kamreen_counters_running",
			Help: "Number of tank counters currently running.",
		}),
		globalElapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kamreen_global_elapsed_seconds",
			Help: "Seconds elapsed in the current service interval.",
		}),
		filterStartEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kamreen_filter_start_events",
			Help: "Qualifying starts accumulated toward the next filter alert.",
		}),
	}

	registry.MustRegister(
		m.alertsTotal,
		m.ticksTotal,
		m.rejectedTotal,
		m.effectErrorsTotal,
		m.persistErrorsTotal,
		m.countersRunning,
		m.globalElapsed,
		m.filterStartEvents,
	)

	return m
}

// Registry exposes the underlying registry for tests and custom handlers.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns a Prometheus HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncAlerts increments the alert counter for kind.
func (m *Metrics) IncAlerts(kind string) {
	if m == nil {
		return
	}
	m.alertsTotal.WithLabelValues(kind).Inc()
}

// IncTicks increments the applied tick counter.
func (m *Metrics) IncTicks() {
	if m == nil {
		return
	}
	m.ticksTotal.Inc()
}

// IncRejected increments the rejected intent counter for op.
func (m *Metrics) IncRejected(op string) {
	if m == nil {
		return
	}
	m.rejectedTotal.WithLabelValues(op).Inc()
}

// IncEffectErrors increments the failed effect counter.
func (m *Metrics) IncEffectErrors(effect string) {
	if m == nil {
		return
	}
	m.effectErrorsTotal.WithLabelValues(effect).Inc()
}

// IncPersistErrors increments the failed snapshot write counter.
func (m *Metrics) IncPersistErrors() {
	if m == nil {
		return
	}
	m.persistErrorsTotal.Inc()
}

// SetState records the gauges derived from a snapshot.
func (m *Metrics) SetState(running, globalElapsed, filterStartEvents int) {
	if m == nil {
		return
	}
	m.countersRunning.Set(float64(running))
	m.globalElapsed.Set(float64(globalElapsed))
	m.filterStartEvents.Set(float64(filterStartEvents))
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
