package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder interface {
	IncRequestsTotal(route string, status int)
	ObserveRequestDuration(route string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncPersistFailures(ledger string)
	IncCatalogFallbacks()
}

type Prometheus struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	persistFailures *prometheus.CounterVec
	catalogFallback prometheus.Counter
}

// NewPrometheus registers collectors on a private registry so several
// instances (one per test engine) can coexist in one process.
func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Prometheus{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fitbuddy_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fitbuddy_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "fitbuddy_store_cache_hits_total",
			Help: "Total number of key-value cache hits",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "fitbuddy_store_cache_misses_total",
			Help: "Total number of key-value cache misses",
		}),
		persistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fitbuddy_ledger_persist_failures_total",
			Help: "Ledger writes that failed and were swallowed",
		}, []string{"ledger"}),
		catalogFallback: factory.NewCounter(prometheus.CounterOpts{
			Name: "fitbuddy_catalog_fallbacks_total",
			Help: "Catalog requests answered from the built-in exercise list",
		}),
	}
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Prometheus) IncRequestsTotal(route string, status int) {
	p.requestsTotal.WithLabelValues(route, statusBucket(status)).Inc()
}

func (p *Prometheus) ObserveRequestDuration(route string, duration time.Duration) {
	p.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (p *Prometheus) IncCacheHits() {
	p.cacheHits.Inc()
}

func (p *Prometheus) IncCacheMisses() {
	p.cacheMisses.Inc()
}

func (p *Prometheus) IncPersistFailures(ledger string) {
	p.persistFailures.WithLabelValues(ledger).Inc()
}

func (p *Prometheus) IncCatalogFallbacks() {
	p.catalogFallback.Inc()
}

func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// Noop discards everything; used when metrics are disabled and in unit tests.
type Noop struct{}

func (Noop) IncRequestsTotal(string, int)                 {}
func (Noop) ObserveRequestDuration(string, time.Duration) {}
func (Noop) IncCacheHits()                                {}
func (Noop) IncCacheMisses()                              {}
func (Noop) IncPersistFailures(string)                    {}
func (Noop) IncCatalogFallbacks()                         {}
