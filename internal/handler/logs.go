package handler

import (
	"net/http"

	"ovh-sniper-api/internal/service"
	"ovh-sniper-api/pkg/response"
)

// LogHandler exposes the in-app log buffer.
type LogHandler struct {
	logs *service.LogService
}

// NewLogHandler creates a new log handler.
func NewLogHandler(logs *service.LogService) *LogHandler {
	return &LogHandler{logs: logs}
}

// List handles GET /api/v1/logs
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.logs.List())
}

// Clear handles DELETE /api/v1/logs
func (h *LogHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.logs.Clear(r.Context()); err != nil {
		response.Error(w, err)
		return
	}

	h.logs.Info(r.Context(), "system", "Logs cleared")
	response.OK(w, map[string]string{"status": "success"})
}
