// Package metrics exposes Prometheus metrics for the HTTP layer, upstream
// providers, the cache and the indicator engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const namespace = "stockapi"

// Metrics holds every collector. Each Metrics owns its registry so several
// instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration        *prometheus.HistogramVec // labels: method, route
	UpstreamCalls       *prometheus.CounterVec   // labels: source, outcome
	UpstreamDuration    *prometheus.HistogramVec // labels: source
	CacheRequests       *prometheus.CounterVec   // labels: kind, result
	IndicatorComputeDur prometheus.Histogram
	RateLimited         prometheus.Counter
	CircuitBreakerState prometheus.Gauge // 0=closed, 1=open, 2=half-open
}

// New creates and registers every collector together with the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UpstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Calls to market data, news and language model providers by outcome",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_call_duration_seconds",
			Help:      "Latency of provider calls",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"source"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Cache lookups by payload kind and result",
		}, []string{"kind", "result"}),
		IndicatorComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "indicator_compute_duration_seconds",
			Help:      "Latency of computing the default indicator set over one series",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the per-client rate limit",
		}),
		CircuitBreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "redis_circuit_breaker_state",
			Help:      "Redis circuit breaker state: 0=closed, 1=open, 2=half-open",
		}),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.UpstreamCalls,
		m.UpstreamDuration,
		m.CacheRequests,
		m.IndicatorComputeDur,
		m.RateLimited,
		m.CircuitBreakerState,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveUpstream records one provider call. The outcome is "ok" or the kind
// of the returned error.
func (m *Metrics) ObserveUpstream(source string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(errors.GetKind(err))
	}

	m.UpstreamCalls.WithLabelValues(source, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveIndicators records the duration of one indicator set computation.
func (m *Metrics) ObserveIndicators(d time.Duration) {
	m.IndicatorComputeDur.Observe(d.Seconds())
}

// CacheHit implements cache.Observer.
func (m *Metrics) CacheHit(kind string) {
	m.CacheRequests.WithLabelValues(kind, "hit").Inc()
}

// CacheMiss implements cache.Observer.
func (m *Metrics) CacheMiss(kind string) {
	m.CacheRequests.WithLabelValues(kind, "miss").Inc()
}

// CacheError implements cache.Observer.
func (m *Metrics) CacheError(kind string) {
	m.CacheRequests.WithLabelValues(kind, "error").Inc()
}

// ObserveRateLimited counts one rejected request.
func (m *Metrics) ObserveRateLimited() {
	m.RateLimited.Inc()
}

// SetCircuitBreakerState records the redis breaker state.
func (m *Metrics) SetCircuitBreakerState(state int) {
	m.CircuitBreakerState.Set(float64(state))
}
