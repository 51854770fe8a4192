package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/taskmate/internal/api"
	"github.com/rezkam/taskmate/internal/infrastructure/http/response"
)

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListTasks(r.Context())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, api.FromTasks(tasks))
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, api.FromTask(task))
}

// CreateTask handles POST /tasks. The client supplies the id.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req api.Task
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	if err := h.service.CreateTask(r.Context(), req.ToTask()); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.DebugContext(r.Context(), "Task created", "task_id", req.ID)
	response.Ack(w, http.StatusCreated)
}

// UpdateTask handles PUT /tasks/{id}. Keys present in the body, including
// null ones, form the patch.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	params, err := api.ParsePatch(chi.URLParam(r, "id"), body)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	if err := h.service.UpdateTask(r.Context(), params); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Ack(w, http.StatusOK)
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Ack(w, http.StatusOK)
}
