package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/bigcalc/internal/service"
)

// Metrics holds the HTTP collectors of one Server. They live in a private
// registry; /metrics serves it together with the default registry, where
// the calc package records evaluation metrics.
type Metrics struct {
	registry *prometheus.Registry
	active   prometheus.Gauge
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	handler  http.Handler
}

// NewMetrics creates the HTTP collectors in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	m := &Metrics{
		registry: reg,
		active: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bigcalc_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_http_requests_total",
			Help: "Total number of HTTP requests by path and status code",
		}, []string{"path", "code"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_http_request_duration_seconds",
			Help:    "HTTP request latency by path",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
	}
	m.handler = promhttp.HandlerFor(
		prometheus.Gatherers{reg, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{},
	)
	return m
}

// RegisterCache exports the counters returned by stats.
func (m *Metrics) RegisterCache(stats func() service.CacheStats) {
	factory := promauto.With(m.registry)
	factory.NewCounterFunc(prometheus.CounterOpts{
		Name: "bigcalc_cache_hits_total",
		Help: "Evaluations served from the result cache",
	}, func() float64 { return float64(stats().Hits) })
	factory.NewCounterFunc(prometheus.CounterOpts{
		Name: "bigcalc_cache_misses_total",
		Help: "Cacheable evaluations that had to be computed",
	}, func() float64 { return float64(stats().Misses) })
	factory.NewCounterFunc(prometheus.CounterOpts{
		Name: "bigcalc_cache_evictions_total",
		Help: "Results dropped from the cache to make room",
	}, func() float64 { return float64(stats().Evictions) })
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "bigcalc_cache_entries",
		Help: "Results currently held by the cache",
	}, func() float64 { return float64(stats().Size) })
}

func (m *Metrics) begin() {
	m.active.Inc()
}

func (m *Metrics) end(path string, code int, elapsed time.Duration) {
	m.active.Dec()
	m.requests.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(path).Observe(elapsed.Seconds())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.metrics.handler.ServeHTTP(w, r)
}

func (s *Server) metricsMiddleware(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := asStatusRecorder(w)
		s.metrics.begin()
		defer func() { s.metrics.end(path, rec.status, time.Since(start)) }()
		next(rec, r)
	}
}
