package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"investease-api/internal/advisor"
	"investease-api/internal/handlers"
	"investease-api/internal/observability"
	"investease-api/internal/ratelimit"
	"investease-api/internal/sip"
)

// Options wires the domain handlers and cross-cutting policies into the router.
type Options struct {
	AllowedOrigins []string
	Limiter        *ratelimit.Limiter // nil disables rate limiting
	SIP            *sip.Handler
	Advisor        *advisor.Handler
}

func NewRouter(opts Options) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{observability.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", handlers.Root)
	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(ratelimit.Middleware(opts.Limiter))
		}

		if opts.SIP != nil {
			sip.RegisterRoutes(r, opts.SIP)
		}
		if opts.Advisor != nil {
			advisor.RegisterRoutes(r, opts.Advisor)
		}
	})

	return r
}
