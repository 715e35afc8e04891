// Package metrics collects and exposes Prometheus metrics for the trip
// registration service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the service layer records domain events through.
// Unit tests pass Nop; production wiring passes *Collector.
type Recorder interface {
	ClientCreated()
	RegistrationSucceeded()
	RegistrationFailed(reason string)
	CancellationSucceeded()
	CancellationFailed(reason string)
}

// Collector registers and updates the service's Prometheus metrics.
type Collector struct {
	clientsCreated      prometheus.Counter
	registrations       prometheus.Counter
	registrationFails   *prometheus.CounterVec
	cancellations       prometheus.Counter
	cancellationFails   *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		clientsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripbook_clients_created_total",
			Help: "Total number of clients created.",
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripbook_registrations_total",
			Help: "Total number of successful trip registrations.",
		}),
		registrationFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripbook_registration_failures_total",
			Help: "Total number of failed trip registrations by reason.",
		}, []string{"reason"}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripbook_cancellations_total",
			Help: "Total number of successful registration cancellations.",
		}),
		cancellationFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripbook_cancellation_failures_total",
			Help: "Total number of failed registration cancellations by reason.",
		}, []string{"reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripbook_http_requests_total",
			Help: "HTTP requests by method, route pattern, and status code.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripbook_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		c.clientsCreated,
		c.registrations,
		c.registrationFails,
		c.cancellations,
		c.cancellationFails,
		c.httpRequests,
		c.httpRequestDuration,
	)
	return c
}

func (c *Collector) ClientCreated() { c.clientsCreated.Inc() }

func (c *Collector) RegistrationSucceeded() { c.registrations.Inc() }

func (c *Collector) CancellationSucceeded() { c.cancellations.Inc() }

func (c *Collector) RegistrationFailed(reason string) {
	c.registrationFails.WithLabelValues(reason).Inc()
}

func (c *Collector) CancellationFailed(reason string) {
	c.cancellationFails.WithLabelValues(reason).Inc()
}

// HTTPMiddleware records a counter and latency observation per request.
// The path label uses chi's route pattern (e.g. /api/trips/{tripID}) rather
// than the raw URL, keeping label cardinality bounded.
func (c *Collector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = "unmatched"
		}
		c.httpRequests.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
		c.httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the /metrics exposition handler for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards every event. Use it in unit tests where
// metric output is irrelevant.
type Nop struct{}

func (Nop) ClientCreated() {}

func (Nop) RegistrationSucceeded() {}

func (Nop) RegistrationFailed(string) {}

func (Nop) CancellationSucceeded() {}

func (Nop) CancellationFailed(string) {}
