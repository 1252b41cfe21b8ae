package router

import (
	"ovh-sniper-api/internal/handler"
	"ovh-sniper-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler        *handler.Handler
	QueueHandler   *handler.QueueHandler
	HistoryHandler *handler.HistoryHandler
	ServerHandler  *handler.ServerHandler
	LogHandler     *handler.LogHandler
	StatsHandler   *handler.StatsHandler
	AuthHandler    *handler.AuthHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
		}

		if cfg.QueueHandler != nil {
			r.Route("/queue", func(r chi.Router) {
				r.Get("/", cfg.QueueHandler.List)
				r.Post("/", cfg.QueueHandler.Add)
				r.Delete("/{id}", cfg.QueueHandler.Remove)
				r.Put("/{id}/status", cfg.QueueHandler.SetStatus)
			})
		}

		if cfg.HistoryHandler != nil {
			r.Route("/history", func(r chi.Router) {
				r.Get("/", cfg.HistoryHandler.List)
				r.Delete("/", cfg.HistoryHandler.Clear)
			})
		}

		if cfg.ServerHandler != nil {
			r.Get("/servers", cfg.ServerHandler.List)
			r.Get("/availability/{planCode}", cfg.ServerHandler.Availability)
		}

		if cfg.LogHandler != nil {
			r.Route("/logs", func(r chi.Router) {
				r.Get("/", cfg.LogHandler.List)
				r.Delete("/", cfg.LogHandler.Clear)
			})
		}

		if cfg.StatsHandler != nil {
			r.Get("/stats", cfg.StatsHandler.Get)
		}

		if cfg.AuthHandler != nil {
			r.Post("/auth/verify", cfg.AuthHandler.Verify)
			r.Get("/settings", cfg.AuthHandler.Settings)
		}
	})

	return r
}
