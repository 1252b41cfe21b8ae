package handler

import (
	"net/http"

	"ovh-sniper-api/internal/service"
	"ovh-sniper-api/pkg/response"
)

// HistoryHandler handles purchase-history HTTP requests.
type HistoryHandler struct {
	history *service.HistoryService
	logs    *service.LogService
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(history *service.HistoryService, logs *service.LogService) *HistoryHandler {
	return &HistoryHandler{history: history, logs: logs}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.history.List())
}

// Clear handles DELETE /api/v1/history
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(r.Context()); err != nil {
		response.Error(w, err)
		return
	}

	h.logs.Info(r.Context(), "system", "Purchase history cleared")
	response.OK(w, map[string]string{"status": "success"})
}
