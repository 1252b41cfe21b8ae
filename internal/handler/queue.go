package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"ovh-sniper-api/internal/model"
	"ovh-sniper-api/internal/service"
	"ovh-sniper-api/pkg/apierror"
	"ovh-sniper-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// QueueHandler handles acquisition-queue HTTP requests.
type QueueHandler struct {
	queue *service.QueueService
}

// NewQueueHandler creates a new queue handler.
func NewQueueHandler(queue *service.QueueService) *QueueHandler {
	return &QueueHandler{queue: queue}
}

// enqueueRequest is the body of POST /api/v1/queue.
type enqueueRequest struct {
	PlanCode      string   `json:"planCode"`
	Datacenter    string   `json:"datacenter"`
	Options       []string `json:"options"`
	RetryInterval int      `json:"retryInterval"`
}

// statusRequest is the body of PUT /api/v1/queue/{id}/status.
type statusRequest struct {
	Status model.Status `json:"status"`
}

// List handles GET /api/v1/queue
func (h *QueueHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.queue.List())
}

// Add handles POST /api/v1/queue
func (h *QueueHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	entry, err := h.queue.Enqueue(r.Context(), req.PlanCode, req.Datacenter, req.Options, req.RetryInterval)
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			response.Error(w, apierror.BadRequest(err.Error()))
			return
		}
		response.Error(w, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"id":    entry.ID,
		"entry": entry,
	})
}

// Remove handles DELETE /api/v1/queue/{id}
func (h *QueueHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.Error(w, apierror.BadRequest("id is required"))
		return
	}

	if err := h.queue.Remove(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "success"})
}

// SetStatus handles PUT /api/v1/queue/{id}/status
func (h *QueueHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.Error(w, apierror.BadRequest("id is required"))
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	entry, err := h.queue.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.Error(w, apierror.NotFound("queue entry not found"))
		case errors.Is(err, service.ErrInvalidStatus):
			response.Error(w, apierror.BadRequest(err.Error()))
		case errors.Is(err, service.ErrInvalidTransition):
			response.Error(w, apierror.Conflict(err.Error()))
		default:
			response.Error(w, err)
		}
		return
	}

	response.OK(w, entry)
}
