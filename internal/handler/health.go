package handler

import (
	"net/http"
	"time"

	"ovh-sniper-api/pkg/response"
)

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	version   string
	startTime time.Time
}

// New creates a new handler.
func New(version string) *Handler {
	return &Handler{version: version, startTime: time.Now()}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	response.OK(w, resp)
}

// Status handles GET /api/status (public liveness probe).
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}
