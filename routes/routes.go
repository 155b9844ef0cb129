package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/upb/career-advisor/app"
	"github.com/upb/career-advisor/handlers"
	"github.com/upb/career-advisor/middleware"
	"github.com/upb/career-advisor/services/routing"
	"github.com/upb/career-advisor/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "https://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	health := handlers.NewHealthHandler(readinessChecks(deps), deps.Logger)
	advise := handlers.NewAdviseHandler(deps.Advisor, deps.ProviderConfig(), deps.Logger)

	// Health check endpoints
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)

	r.Handle("/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if perMin := deps.Config.Server.RateLimitPerMinute; perMin > 0 {
				limiter := middleware.NewRateLimiter(perMin, deps.Config.Server.RateLimitBurst, deps.Logger)
				r.Use(limiter.Handler)
			}
			r.Post("/advise", advise.HandleAdvise)
		})
		r.Get("/attempts", advise.HandleListAttempts)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusNotFound, "endpoint not found", nil)
	})

	return r
}

func readinessChecks(deps *app.Dependencies) map[string]handlers.Check {
	return map[string]handlers.Check{
		"providers": func(context.Context) error {
			for _, tag := range []routing.ProviderTag{routing.ProviderRouted, routing.ProviderDirect} {
				if !hasName(deps.Providers.Names(), string(tag)) {
					return errors.New("provider not registered: " + string(tag))
				}
			}
			return nil
		},
		"tools": func(context.Context) error {
			if len(deps.Toolkit) == 0 {
				return errors.New("no tools configured")
			}
			return nil
		},
	}
}

func hasName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
