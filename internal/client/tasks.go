package client

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/rezkam/taskmate/internal/api"
	"github.com/rezkam/taskmate/internal/domain"
)

// BulkResult reports the outcome of a bulk delete.
type BulkResult struct {
	// Deleted holds the ids whose delete succeeded, in request order.
	Deleted []string
	// Failed is the number of ids that could not be deleted.
	Failed int
}

// LoadTasks returns every task, or an empty list on failure. Deadlines are
// truncated to their date part.
func (c *Client) LoadTasks(ctx context.Context) []*domain.Task {
	var dtos []api.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &dtos); err != nil {
		slog.WarnContext(ctx, "Failed to load tasks", "error", err)
		return []*domain.Task{}
	}

	tasks := make([]*domain.Task, 0, len(dtos))
	for _, dto := range dtos {
		tasks = append(tasks, dto.ToTask())
	}
	return tasks
}

// GetTask returns one task. ok is false when it is missing or the request failed.
func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, bool) {
	var dto api.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &dto); err != nil {
		slog.WarnContext(ctx, "Failed to get task", "task_id", id, "error", err)
		return nil, false
	}
	return dto.ToTask(), true
}

// CreateTask stores a new task. The server fills in defaults.
func (c *Client) CreateTask(ctx context.Context, task *domain.Task) bool {
	dto := api.FromTask(task)
	dto.UpdatedAt = nil
	if err := c.do(ctx, http.MethodPost, "/tasks", dto, nil); err != nil {
		slog.WarnContext(ctx, "Failed to create task", "task_id", task.ID, "error", err)
		return false
	}
	return true
}

// UpdateTask sends the masked fields of params as a partial update.
func (c *Client) UpdateTask(ctx context.Context, params domain.UpdateTaskParams) bool {
	if err := c.do(ctx, http.MethodPut, taskPath(params.TaskID), api.PatchFromParams(params), nil); err != nil {
		slog.WarnContext(ctx, "Failed to update task", "task_id", params.TaskID, "error", err)
		return false
	}
	return true
}

// DeleteTask deletes one task.
func (c *Client) DeleteTask(ctx context.Context, id string) bool {
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil); err != nil {
		slog.WarnContext(ctx, "Failed to delete task", "task_id", id, "error", err)
		return false
	}
	return true
}

// DeleteTasks deletes ids concurrently and waits for every request. The
// API has no bulk endpoint, so each id is one request.
func (c *Client) DeleteTasks(ctx context.Context, ids []string) BulkResult {
	ok := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			ok[i] = c.DeleteTask(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	result := BulkResult{Deleted: make([]string, 0, len(ids))}
	for i, id := range ids {
		if ok[i] {
			result.Deleted = append(result.Deleted, id)
		} else {
			result.Failed++
		}
	}
	if result.Failed > 0 {
		slog.WarnContext(ctx, "Bulk delete incomplete", "deleted", len(result.Deleted), "failed", result.Failed)
	}
	return result
}

// ClearTasks deletes every task currently stored.
func (c *Client) ClearTasks(ctx context.Context) BulkResult {
	tasks := c.LoadTasks(ctx)
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return c.DeleteTasks(ctx, ids)
}

// Ping reports whether the server answers GET /health with SERVING.
func (c *Client) Ping(ctx context.Context) bool {
	var h api.Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		slog.DebugContext(ctx, "Health check failed", "error", err)
		return false
	}
	return h.Status == "SERVING"
}
