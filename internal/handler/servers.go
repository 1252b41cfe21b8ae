package handler

import (
	"errors"
	"net/http"

	"ovh-sniper-api/internal/ovh"
	"ovh-sniper-api/internal/service"
	"ovh-sniper-api/pkg/apierror"
	"ovh-sniper-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ServerHandler handles catalog and availability HTTP requests.
type ServerHandler struct {
	catalog *service.CatalogService
	probe   *service.ProbeService
}

// NewServerHandler creates a new server handler.
func NewServerHandler(catalog *service.CatalogService, probe *service.ProbeService) *ServerHandler {
	return &ServerHandler{catalog: catalog, probe: probe}
}

// List handles GET /api/v1/servers. With ?refresh=true the catalog is
// reloaded from the OVH API first; a failed refresh still serves the
// cached plans.
func (h *ServerHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		if _, err := h.catalog.Refresh(r.Context()); err != nil && errors.Is(err, ovh.ErrNotConfigured) {
			response.Error(w, apierror.ServiceUnavailable("OVH API credentials not configured"))
			return
		}
	}

	response.OK(w, h.catalog.List())
}

// Availability handles GET /api/v1/availability/{planCode}
func (h *ServerHandler) Availability(w http.ResponseWriter, r *http.Request) {
	planCode := chi.URLParam(r, "planCode")
	if planCode == "" {
		response.Error(w, apierror.BadRequest("planCode is required"))
		return
	}

	availability, err := h.probe.CheckAvailability(r.Context(), planCode)
	if err != nil {
		if errors.Is(err, ovh.ErrNotConfigured) {
			response.Error(w, apierror.ServiceUnavailable("OVH API credentials not configured"))
			return
		}
		response.Error(w, apierror.NotFound("availability unknown for "+planCode))
		return
	}

	response.OK(w, availability)
}
