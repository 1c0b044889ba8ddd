package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/lead-management/internal/infra/http/middleware"
)

type RouterConfig struct {
	Leads          *LeadHandler
	Interests      *InterestHandler
	Health         *HealthHandler
	AllowedOrigins []string
	// RequestLogging turns on chi's access log.
	RequestLogging bool
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.RequestLogging {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	app := cfg.Leads.Alerts.app()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{
			"Link", "X-Total-Count", "Location",
			"X-" + app + "-alert", "X-" + app + "-error", "X-" + app + "-params",
		},
		MaxAge: 300,
	}))

	cfg.Leads.Routes(r)
	cfg.Interests.Routes(r)

	r.Route("/management", func(r chi.Router) {
		if cfg.Health != nil {
			r.Get("/health", cfg.Health.Handle)
		}
		r.Handle("/prometheus", promhttp.Handler())
	})

	return r
}
