// Package metrics owns the process's Prometheus registry. Native collectors
// (HTTP requests, diagnostic events) and the OpenTelemetry meter provider
// (workflow counters, outbound HTTP metrics) both export through it.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"storefront/pkg/diag"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const namespace = "storefront"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Metrics groups the registry and the collectors registered on it.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight      prometheus.Gauge
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	diagnosticsEvents *prometheus.CounterVec
}

// New creates a registry with the process and Go runtime collectors plus the
// storefront collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   DefaultBuckets,
		}, []string{"method", "route"}),
		diagnosticsEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "diagnostics",
			Name:      "events_total",
			Help:      "Handled failures published on the diagnostics bus.",
		}, []string{"component", "operation"}),
	}

	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.diagnosticsEvents,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// MeterProvider returns an OpenTelemetry meter provider whose instruments are
// exported through the registry.
func (m *Metrics) MeterProvider() (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(m.Registry))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// Gauge registers a gauge sampled from fn on every scrape, e.g. the size of
// an in-memory registry.
func (m *Metrics) Gauge(subsystem, name, help string, fn func() int) {
	m.Registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, func() float64 {
		return float64(fn())
	}))
}

// ObserveDiagnostic counts a diagnostic event. It has the diag.SinkFunc
// signature so it can be subscribed to a diag.Bus directly.
func (m *Metrics) ObserveDiagnostic(_ context.Context, e diag.Event) {
	m.diagnosticsEvents.WithLabelValues(e.Component, e.Operation).Inc()
}

// RouteFunc resolves the route pattern a request matched, keeping label
// cardinality bounded. It runs after the handler.
type RouteFunc func(r *http.Request) string

// Instrument wraps next with request count, latency and in-flight metrics.
func (m *Metrics) Instrument(route RouteFunc, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		pattern := route(r)
		if pattern == "" {
			pattern = "unmatched"
		}
		m.httpRequests.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}
