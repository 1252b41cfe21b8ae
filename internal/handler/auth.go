package handler

import (
	"net/http"

	"ovh-sniper-api/internal/config"
	"ovh-sniper-api/internal/ovh"
	"ovh-sniper-api/internal/service"
	"ovh-sniper-api/pkg/response"
)

// AuthHandler verifies OVH credentials and exposes a redacted settings
// view. Credentials themselves are environment-driven and immutable at
// runtime.
type AuthHandler struct {
	api  ovh.API
	logs *service.LogService
	cfg  config.OVHConfig
}

// NewAuthHandler creates a new auth handler. api may be nil.
func NewAuthHandler(api ovh.API, logs *service.LogService, cfg config.OVHConfig) *AuthHandler {
	return &AuthHandler{api: api, logs: logs, cfg: cfg}
}

// Verify handles POST /api/v1/auth/verify by issuing a cheap
// authenticated call.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if h.api == nil {
		response.OK(w, map[string]bool{"valid": false})
		return
	}

	if err := h.api.VerifyAuth(r.Context()); err != nil {
		h.logs.Error(r.Context(), "system", "Authentication verification failed: %v", err)
		response.OK(w, map[string]bool{"valid": false})
		return
	}

	response.OK(w, map[string]bool{"valid": true})
}

// Settings handles GET /api/v1/settings with secrets redacted.
func (h *AuthHandler) Settings(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"endpoint":   h.cfg.Endpoint,
		"zone":       h.cfg.Zone,
		"configured": h.cfg.Configured(),
		"telegram":   h.cfg.TelegramToken != "" && h.cfg.TelegramChatID != "",
	})
}
