// Package api defines the JSON wire format shared by the HTTP handlers and
// the API client, with mappers to and from domain types.
package api

import (
	"time"

	"github.com/rezkam/taskmate/internal/domain"
)

// Task is the JSON representation of a task.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Deadline    *string    `json:"deadline"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Category is the JSON representation of a category.
type Category struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

// OK is the body of successful writes.
type OK struct {
	OK bool `json:"ok"`
}

// Health is the body of GET /health.
type Health struct {
	Status string `json:"status"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details,omitempty"`
}

// ErrorField describes a field-specific error.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// FromTask converts a domain task to its wire form.
func FromTask(t *domain.Task) Task {
	dto := Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Category:    t.Category,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Progress:    t.Progress,
	}
	if !t.UpdatedAt.IsZero() {
		updated := t.UpdatedAt
		dto.UpdatedAt = &updated
	}
	return dto
}

// FromTasks converts a slice; the result is never nil so it encodes as [].
func FromTasks(tasks []*domain.Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, FromTask(t))
	}
	return out
}

// ToTask converts a wire task to the domain. The deadline is truncated to
// its date part; an empty deadline becomes nil.
func (t Task) ToTask() *domain.Task {
	task := &domain.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    domain.Priority(t.Priority),
		Status:      domain.Status(t.Status),
		Progress:    t.Progress,
	}
	if t.Deadline != nil {
		if d := domain.NormalizeDate(*t.Deadline); d != "" {
			task.Deadline = &d
		}
	}
	if t.UpdatedAt != nil {
		task.UpdatedAt = *t.UpdatedAt
	}
	return task
}

// FromCategory converts a domain category to its wire form.
func FromCategory(c domain.Category) Category {
	return Category{Key: c.Key, Color: c.Color}
}

// FromCategories converts a slice; the result is never nil.
func FromCategories(categories []domain.Category) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, FromCategory(c))
	}
	return out
}

// ToCategory converts a wire category to the domain.
func (c Category) ToCategory() domain.Category {
	return domain.Category{Key: c.Key, Color: c.Color}
}
