package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/notebot-labs/chatgate/internal/database"
	mw "github.com/notebot-labs/chatgate/internal/middleware"
	cnats "github.com/notebot-labs/chatgate/internal/nats"
)

// HandlerSet holds handler functions injected from main.go to avoid import cycles.
type HandlerSet struct {
	// Session issuance
	CreateSession http.HandlerFunc

	// Governance handlers
	ValidateMessage http.HandlerFunc
	SubmitMessage   http.HandlerFunc
	GetQuota        http.HandlerFunc
	ListAuditLogs   http.HandlerFunc

	// Session middleware
	SessionMiddleware func(http.Handler) http.Handler
}

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	CORSAllowedOrigins []string
	SessionRateLimiter func(http.Handler) http.Handler
}

func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, natsClient *cnats.Client, cfg RouterConfig, h HandlerSet) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.SecurityHeaders)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(mw.CORS(cfg.CORSAllowedOrigins)))

	// Liveness probe — always 200, no dependency checks
	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "alive"})
	})

	// Readiness probe — checks Redis, DB, NATS
	readinessHandler := func(w http.ResponseWriter, r *http.Request) {
		health := map[string]string{
			"status":   "healthy",
			"redis":    "healthy",
			"database": "healthy",
			"nats":     "healthy",
		}

		status := http.StatusOK

		if err := rdb.Ping(r.Context()).Err(); err != nil {
			health["redis"] = "unhealthy"
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}

		if pool != nil {
			if err := database.HealthCheck(r.Context(), pool); err != nil {
				health["database"] = "unhealthy"
				health["status"] = "degraded"
				status = http.StatusServiceUnavailable
			}
		} else {
			health["database"] = "not configured"
		}

		if natsClient != nil && !natsClient.Healthy() {
			health["nats"] = "unhealthy"
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
		} else if natsClient == nil {
			health["nats"] = "not configured"
		}

		JSON(w, status, health)
	}

	r.Get("/health/ready", readinessHandler)
	r.Get("/health", readinessHandler)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Session issuance (public) — optionally rate-limited
		r.Group(func(r chi.Router) {
			if cfg.SessionRateLimiter != nil {
				r.Use(cfg.SessionRateLimiter)
			}
			r.Post("/session", h.CreateSession)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(h.SessionMiddleware)

			r.Route("/messages", func(r chi.Router) {
				r.Post("/", h.SubmitMessage)
				r.Post("/validate", h.ValidateMessage)
			})

			r.Route("/governance", func(r chi.Router) {
				r.Get("/quota", h.GetQuota)
				r.Get("/audit", h.ListAuditLogs)
			})
		})
	})

	return r
}
