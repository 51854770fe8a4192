// Package handler adapts HTTP requests to the task service.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/taskmate/internal/application/tasks"
)

// TaskHandler serves the /tasks and /categories resources.
type TaskHandler struct {
	service *tasks.Service
}

// NewTaskHandler creates a new HTTP API handler.
func NewTaskHandler(service *tasks.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

// NewRouter mounts every API route on a fresh chi router. Production code
// and tests both build the API through this function.
func NewRouter(service *tasks.Service) http.Handler {
	h := NewTaskHandler(service)

	r := chi.NewRouter()
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
	})
	return r
}
