package handler

import (
	"net/http"

	"ovh-sniper-api/internal/service"
	"ovh-sniper-api/pkg/response"
)

// StatsHandler exposes the derived counters.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.stats.Current())
}
