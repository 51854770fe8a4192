// Package board holds the client-side session state: the last fetched
// tasks and categories plus the active filters. Mutations go through the
// API first and only touch local state once the server accepted them.
package board

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rezkam/taskmate/internal/client"
	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/view"
)

var (
	// ErrSyncFailed indicates the server did not accept a change. Local
	// state is left as it was, except for bulk deletes which keep what
	// did succeed.
	ErrSyncFailed = errors.New("failed to sync with server")

	// ErrNothingToClear is returned by ClearDone and ClearAll when there is
	// nothing to delete.
	ErrNothingToClear = errors.New("nothing to clear")
)

// API is the subset of the API client the board needs.
type API interface {
	LoadTasks(ctx context.Context) []*domain.Task
	LoadCategories(ctx context.Context) []domain.Category
	CreateTask(ctx context.Context, task *domain.Task) bool
	UpdateTask(ctx context.Context, params domain.UpdateTaskParams) bool
	DeleteTask(ctx context.Context, id string) bool
	DeleteTasks(ctx context.Context, ids []string) client.BulkResult
	SaveCategories(ctx context.Context, next []domain.Category) bool
}

// Config holds board dependencies.
type Config struct {
	// Now is the clock used for "today". Defaults to time.Now.
	Now func() time.Time
}

// Board is safe for concurrent use.
type Board struct {
	api API
	now func() time.Time

	mu         sync.Mutex
	tasks      []*domain.Task
	categories []domain.Category
	filters    view.Filters
}

// New creates an empty board. Call Refresh to load state.
func New(api API, cfg Config) *Board {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Board{
		api:        api,
		now:        cfg.Now,
		categories: domain.DefaultCategories(),
		filters:    view.DefaultFilters(),
	}
}

// Refresh reloads tasks and categories concurrently.
func (b *Board) Refresh(ctx context.Context) {
	var (
		tasks      []*domain.Task
		categories []domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tasks = b.api.LoadTasks(gctx)
		return nil
	})
	g.Go(func() error {
		categories = b.api.LoadCategories(gctx)
		return nil
	})
	_ = g.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = tasks
	b.categories = categories
}

func (b *Board) refreshTasks(ctx context.Context) {
	tasks := b.api.LoadTasks(ctx)
	b.mu.Lock()
	b.tasks = tasks
	b.mu.Unlock()
}

// find returns the index of id in b.tasks. Caller holds b.mu.
func (b *Board) find(id string) int {
	return slices.IndexFunc(b.tasks, func(t *domain.Task) bool { return t.ID == id })
}

// Toggle flips a task between pending and done.
func (b *Board) Toggle(ctx context.Context, id string) error {
	b.mu.Lock()
	i := b.find(id)
	if i < 0 {
		b.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	next := b.tasks[i].Status.Toggle()
	b.mu.Unlock()

	ok := b.api.UpdateTask(ctx, domain.UpdateTaskParams{
		TaskID:     id,
		UpdateMask: []string{domain.FieldStatus},
		Status:     &next,
	})
	if !ok {
		return ErrSyncFailed
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.find(id); i >= 0 {
		updated := b.tasks[i].Clone()
		updated.Status = next
		b.tasks[i] = updated
	}
	return nil
}

// Delete removes one task.
func (b *Board) Delete(ctx context.Context, id string) error {
	if !b.api.DeleteTask(ctx, id) {
		return ErrSyncFailed
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = slices.DeleteFunc(b.tasks, func(t *domain.Task) bool { return t.ID == id })
	return nil
}

// ClearDone deletes every done task.
func (b *Board) ClearDone(ctx context.Context) (client.BulkResult, error) {
	return b.clear(ctx, (*domain.Task).IsDone)
}

// ClearAll deletes every task.
func (b *Board) ClearAll(ctx context.Context) (client.BulkResult, error) {
	return b.clear(ctx, func(*domain.Task) bool { return true })
}

// clear deletes the tasks for which match is true and drops the ones the server
// confirmed from local state. It returns ErrSyncFailed when any delete failed.
func (b *Board) clear(ctx context.Context, match func(*domain.Task) bool) (client.BulkResult, error) {
	b.mu.Lock()
	var ids []string
	for _, t := range b.tasks {
		if match(t) {
			ids = append(ids, t.ID)
		}
	}
	b.mu.Unlock()

	if len(ids) == 0 {
		return client.BulkResult{}, ErrNothingToClear
	}

	result := b.api.DeleteTasks(ctx, ids)

	b.mu.Lock()
	b.tasks = slices.DeleteFunc(b.tasks, func(t *domain.Task) bool {
		return slices.Contains(result.Deleted, t.ID)
	})
	b.mu.Unlock()

	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d deletes failed", ErrSyncFailed, result.Failed, len(ids))
	}
	return result, nil
}

// AddCategory registers a category and selects it as the category filter.
// An empty colour is picked from the palette.
func (b *Board) AddCategory(ctx context.Context, key, color string) (domain.Category, error) {
	b.mu.Lock()
	current := slices.Clone(b.categories)
	b.mu.Unlock()

	category, err := domain.NewCategory(key, color, len(current))
	if err != nil {
		return domain.Category{}, err
	}
	if _, exists := domain.FindCategory(current, category.Key); exists {
		return domain.Category{}, domain.ErrCategoryExists
	}

	if !b.api.SaveCategories(ctx, append(current, category)) {
		return domain.Category{}, ErrSyncFailed
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := domain.FindCategory(b.categories, category.Key); !exists {
		b.categories = append(b.categories, category)
	}
	b.filters.Category = category.Key
	return category, nil
}

// Draft is the input of AddTask. Zero values take the server defaults.
type Draft struct {
	Title       string
	Description string
	Deadline    string
	Category    string
	Priority    domain.Priority
	Progress    int
}

// AddTask creates a task with a fresh id and reloads the task list so the
// stored row, with its defaults, is what the board shows.
func (b *Board) AddTask(ctx context.Context, d Draft) (string, error) {
	title, err := domain.NewTitle(d.Title)
	if err != nil {
		return "", err
	}

	task := &domain.Task{
		ID:       uuid.NewString(),
		Title:    title.String(),
		Category: strings.TrimSpace(d.Category),
		Priority: d.Priority,
		Status:   domain.StatusPending,
		Progress: d.Progress,
	}
	if desc := strings.TrimSpace(d.Description); desc != "" {
		task.Description = &desc
	}
	if deadline := strings.TrimSpace(d.Deadline); deadline != "" {
		task.Deadline = &deadline
	}

	if !b.api.CreateTask(ctx, task) {
		return "", ErrSyncFailed
	}
	b.refreshTasks(ctx)
	return task.ID, nil
}

// EditTask forwards a partial update and reloads the task list.
func (b *Board) EditTask(ctx context.Context, params domain.UpdateTaskParams) error {
	if params.Has(domain.FieldTitle) {
		if params.Title == nil {
			return domain.ErrTitleRequired
		}
		if _, err := domain.NewTitle(*params.Title); err != nil {
			return err
		}
	}
	if len(params.UpdateMask) == 0 {
		return domain.ErrEmptyPatch
	}

	if !b.api.UpdateTask(ctx, params) {
		return ErrSyncFailed
	}
	b.refreshTasks(ctx)
	return nil
}
