package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kras-kickers/volunteers/internal/api"
	"kras-kickers/volunteers/internal/config"
	"kras-kickers/volunteers/internal/logging"
	"kras-kickers/volunteers/internal/middleware"
)

func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, gatherer prometheus.Gatherer) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	if !cfg.IsProduction() {
		r.Use(middleware.Logging)
	}
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Use(middleware.VerificationSessionMiddleware(deps.Services.Sessions, cfg.Session.SecureCookie))
	r.Use(middleware.RoleRecorder)

	logging.Info("Router initialized with metrics and session middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps.Repo.Lookup, deps.Services.Sessions, deps.UpSince))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	RegisterStaticRoutes(r, cfg.Images.Dir, cfg.Images.Bucket != "")

	handlers := api.NewHandlers(deps)
	verifyLimiter := middleware.NewRateLimiter(verifyRatePerSecond, verifyBurst, limiterTableSize)

	RegisterAPIRoutes(r, handlers, verifyLimiter)

	return r
}
