package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rezkam/taskmate/internal/api"
	"github.com/rezkam/taskmate/internal/infrastructure/http/response"
)

// ListCategories handles GET /categories.
func (h *TaskHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, api.FromCategories(categories))
}

// CreateCategory handles POST /categories.
func (h *TaskHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req api.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	if _, err := h.service.CreateCategory(r.Context(), req.Key, req.Color); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Ack(w, http.StatusCreated)
}
