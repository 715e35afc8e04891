package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jmadera/tripbook/internal/metrics"
	"github.com/jmadera/tripbook/internal/middleware"
)

// maxBodyBytes caps request bodies. The only body this API accepts is the
// client-creation payload, which is tiny.
const maxBodyBytes = 1 << 20 // 1 MiB

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	Trips       TripServicer
	Clients     ClientServicer
	Logger      *slog.Logger
	Collector   *metrics.Collector
	Metrics     http.Handler // the /metrics exposition handler
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
}

// NewRouter returns the fully wired chi router.
//
// Middleware order: RequestID → RealIP → SlogLogger → Recoverer → CORS →
// metrics → body size cap → rate limit. RequestID runs first so every later
// stage (including the logger) sees the id; the rate limiter runs after
// RealIP so buckets key on the true client address behind a proxy.
func NewRouter(deps RouterDeps) http.Handler {
	s := NewServer(deps.Trips, deps.Clients)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(deps.CORSOrigins))

	r.Get("/healthz", s.GetHealth)
	r.Method(http.MethodGet, "/metrics", deps.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Use(deps.Collector.HTTPMiddleware)
		r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
		r.Use(deps.RateLimiter.Middleware)

		r.Get("/trips", s.ListTrips)
		r.Get("/trips/{tripID}", s.GetTrip)

		r.Post("/clients", s.CreateClient)
		r.Route("/clients/{clientID}/trips", func(r chi.Router) {
			r.Get("/", s.ListClientTrips)
			r.Put("/{tripID}", s.RegisterClientForTrip)
			r.Delete("/{tripID}", s.CancelClientRegistration)
		})
	})

	return r
}
