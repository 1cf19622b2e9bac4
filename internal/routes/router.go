package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"stackpad/backend/internal/api"
	"stackpad/backend/internal/config"
	"stackpad/backend/internal/metrics"
	"stackpad/backend/internal/middleware"
)

// RegisterRoutes builds the chi router for the scaffold.
//
// The composite health state is reachable at both /health (bare path, for
// deployment-platform probes) and /api/health; per-component reads live at
// /api/health/db and /api/health/redis.
func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, reg *metrics.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics(reg))
	r.Use(middleware.RateLimit)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Bare path so liveness/readiness probes that only support plain paths
	// can reach the composite state.
	r.Get("/health", api.HealthHandler(deps.Aggregator, reg))

	notesHandlers := api.NewNotesHandlers(deps.Notes)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/health", api.HealthHandler(deps.Aggregator, reg))
		ar.Get("/health/db", api.ComponentHealthHandler(deps.DBProbe, reg))
		ar.Get("/health/redis", api.ComponentHealthHandler(deps.CacheProbe, reg))

		ar.Post("/auth/token", api.TokenHandler(cfg.Auth.Secret, cfg.Auth.TokenTTL))

		ar.Get("/notes", notesHandlers.List())
		ar.Get("/notes/{id}", notesHandlers.Get())

		// Writes require a bearer token.
		ar.Group(func(protected chi.Router) {
			protected.Use(middleware.Auth(cfg.Auth.Secret))
			protected.Post("/notes", notesHandlers.Create())
			protected.Delete("/notes/{id}", notesHandlers.Delete())
		})
	})

	return r
}
