// Package metrics exposes Prometheus instrumentation for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth outcomes used as the "outcome" label of ledger_auth_attempts_total.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidRequest     = "invalid_request"
	OutcomeConflict           = "conflict"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
)

// Metrics holds the collectors registered for one server instance.
type Metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	authAttempts *prometheus.CounterVec
	gatherer     prometheus.Gatherer
}

// New creates the collectors and registers them with a fresh registry, so
// several instances (tests, for one) never collide on the default registerer.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_auth_attempts_total",
			Help: "Total number of register and login attempts by outcome",
		}, []string{"operation", "outcome"}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.requests,
		m.duration,
		m.authAttempts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveAuth counts one register or login attempt. Safe on a nil receiver.
func (m *Metrics) ObserveAuth(operation, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(operation, outcome).Inc()
}

// Middleware records request counts and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
