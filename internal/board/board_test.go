package board_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/taskmate/internal/application/tasks"
	"github.com/rezkam/taskmate/internal/board"
	"github.com/rezkam/taskmate/internal/client"
	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/infrastructure/http/handler"
	"github.com/rezkam/taskmate/internal/infrastructure/persistence/sqlite"
	"github.com/rezkam/taskmate/internal/ptr"
	"github.com/rezkam/taskmate/internal/view"
)

var _ board.API = (*client.Client)(nil)

var today = time.Date(2025, 10, 7, 9, 0, 0, 0, time.Local)

func clock() time.Time { return today }

// newE2EBoard wires a board to the real client, router and a SQLite store.
func newE2EBoard(t *testing.T) *board.Board {
	t.Helper()
	store, err := sqlite.NewStore(context.Background(), sqlite.DBConfig{
		DSN:         filepath.Join(t.TempDir(), "board.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := httptest.NewServer(handler.NewRouter(tasks.NewService(store, tasks.Config{})))
	t.Cleanup(srv.Close)

	c := client.New(client.Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	return board.New(c, board.Config{Now: clock})
}

// fakeAPI is an in-memory API whose writes can be made to fail.
type fakeAPI struct {
	mu         sync.Mutex
	tasks      []*domain.Task
	categories []domain.Category
	failWrites bool
	failDelete map[string]bool
}

func (f *fakeAPI) LoadTasks(context.Context) []*domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t.Clone())
	}
	return out
}

func (f *fakeAPI) LoadCategories(context.Context) []domain.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.categories == nil {
		return domain.DefaultCategories()
	}
	return append([]domain.Category(nil), f.categories...)
}

func (f *fakeAPI) CreateTask(_ context.Context, task *domain.Task) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return false
	}
	f.tasks = append(f.tasks, task.Clone())
	return true
}

func (f *fakeAPI) UpdateTask(_ context.Context, params domain.UpdateTaskParams) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return false
	}
	for _, t := range f.tasks {
		if t.ID == params.TaskID {
			params.Apply(t)
			return true
		}
	}
	return false
}

func (f *fakeAPI) DeleteTask(_ context.Context, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites || f.failDelete[id] {
		return false
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeAPI) DeleteTasks(ctx context.Context, ids []string) client.BulkResult {
	result := client.BulkResult{Deleted: []string{}}
	for _, id := range ids {
		if f.DeleteTask(ctx, id) {
			result.Deleted = append(result.Deleted, id)
		} else {
			result.Failed++
		}
	}
	return result
}

func (f *fakeAPI) SaveCategories(_ context.Context, next []domain.Category) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return false
	}
	f.categories = append([]domain.Category(nil), next...)
	return true
}

func seeded(tasks ...*domain.Task) *fakeAPI {
	return &fakeAPI{tasks: tasks, failDelete: map[string]bool{}}
}

func newTask(id string, status domain.Status) *domain.Task {
	return &domain.Task{ID: id, Title: id, Category: domain.DefaultCategory, Priority: domain.PriorityLow, Status: status}
}

func TestEndToEnd_AddToggleSummary(t *testing.T) {
	ctx := context.Background()
	b := newE2EBoard(t)
	b.Refresh(ctx)

	id, err := b.AddTask(ctx, board.Draft{Title: "Essay", Deadline: "2025-10-01", Priority: domain.PriorityHigh})
	require.NoError(t, err)
	_, err = b.AddTask(ctx, board.Draft{Title: "Groceries"})
	require.NoError(t, err)

	got, ok := b.Task(id)
	require.True(t, ok)
	assert.Equal(t, domain.DefaultCategory, got.Category)
	assert.Equal(t, domain.StatusPending, got.Status)

	assert.Equal(t, view.Summary{Total: 2, Done: 0, Overdue: 1}, b.Summary())

	require.NoError(t, b.Toggle(ctx, id))
	assert.Equal(t, view.Summary{Total: 2, Done: 1, Overdue: 0}, b.Summary())

	b.Refresh(ctx)
	got, ok = b.Task(id)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDone, got.Status, "server agrees after refresh")

	assert.Equal(t, view.Progress{Average: 0, Done: 1, NotDone: 1}, b.Progress())
}

func TestEndToEnd_ClearDone(t *testing.T) {
	ctx := context.Background()
	b := newE2EBoard(t)

	first, err := b.AddTask(ctx, board.Draft{Title: "a"})
	require.NoError(t, err)
	_, err = b.AddTask(ctx, board.Draft{Title: "b"})
	require.NoError(t, err)

	_, err = b.ClearDone(ctx)
	assert.ErrorIs(t, err, board.ErrNothingToClear)

	require.NoError(t, b.Toggle(ctx, first))
	result, err := b.ClearDone(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{first}, result.Deleted)

	b.Refresh(ctx)
	require.Len(t, b.Tasks(), 1)
	assert.Equal(t, "b", b.Tasks()[0].Title)
}

func TestEndToEnd_AddCategorySelectsFilter(t *testing.T) {
	ctx := context.Background()
	b := newE2EBoard(t)
	b.Refresh(ctx)

	cat, err := b.AddCategory(ctx, "Kuliah", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PickColor(1), cat.Color)
	assert.Equal(t, "Kuliah", b.Filters().Category)

	_, err = b.AddCategory(ctx, "kuliah", "")
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	b.Refresh(ctx)
	_, found := domain.FindCategory(b.Categories(), "Kuliah")
	assert.True(t, found)
}

func TestToggle_FailureLeavesState(t *testing.T) {
	ctx := context.Background()
	api := seeded(newTask("1", domain.StatusPending))
	b := board.New(api, board.Config{Now: clock})
	b.Refresh(ctx)

	api.failWrites = true
	assert.ErrorIs(t, b.Toggle(ctx, "1"), board.ErrSyncFailed)

	got, _ := b.Task("1")
	assert.Equal(t, domain.StatusPending, got.Status)

	assert.ErrorIs(t, b.Toggle(ctx, "missing"), domain.ErrTaskNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	api := seeded(newTask("1", domain.StatusDone), newTask("2", domain.StatusPending))
	b := board.New(api, board.Config{Now: clock})
	b.Refresh(ctx)

	api.failDelete["1"] = true
	assert.ErrorIs(t, b.Delete(ctx, "1"), board.ErrSyncFailed)
	assert.Len(t, b.Tasks(), 2)

	require.NoError(t, b.Delete(ctx, "2"))
	assert.Len(t, b.Tasks(), 1)
}

func TestClearAll_PartialFailureKeepsFailedTasks(t *testing.T) {
	ctx := context.Background()
	api := seeded(newTask("1", domain.StatusDone), newTask("2", domain.StatusPending), newTask("3", domain.StatusPending))
	b := board.New(api, board.Config{Now: clock})
	b.Refresh(ctx)

	api.failDelete["2"] = true
	result, err := b.ClearAll(ctx)
	assert.ErrorIs(t, err, board.ErrSyncFailed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"1", "3"}, result.Deleted)

	remaining := b.Tasks()
	require.Len(t, remaining, 1)
	assert.Equal(t, "2", remaining[0].ID)
}

func TestClearAll_Empty(t *testing.T) {
	b := board.New(seeded(), board.Config{Now: clock})
	b.Refresh(context.Background())

	_, err := b.ClearAll(context.Background())
	assert.ErrorIs(t, err, board.ErrNothingToClear)
}

func TestAddTask_Validation(t *testing.T) {
	ctx := context.Background()
	api := seeded()
	b := board.New(api, board.Config{Now: clock})

	_, err := b.AddTask(ctx, board.Draft{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)
	assert.Empty(t, api.tasks)

	api.failWrites = true
	_, err = b.AddTask(ctx, board.Draft{Title: "x"})
	assert.ErrorIs(t, err, board.ErrSyncFailed)
}

func TestAddTask_GeneratesDistinctIDs(t *testing.T) {
	ctx := context.Background()
	b := board.New(seeded(), board.Config{Now: clock})

	a, err := b.AddTask(ctx, board.Draft{Title: "a", Description: "  ", Deadline: "2025-10-09"})
	require.NoError(t, err)
	c, err := b.AddTask(ctx, board.Draft{Title: "c"})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	got, ok := b.Task(a)
	require.True(t, ok)
	assert.Nil(t, got.Description, "blank description is omitted")
	assert.Equal(t, "2025-10-09", *got.Deadline)
}

func TestEditTask(t *testing.T) {
	ctx := context.Background()
	api := seeded(newTask("1", domain.StatusPending))
	b := board.New(api, board.Config{Now: clock})
	b.Refresh(ctx)

	err := b.EditTask(ctx, domain.UpdateTaskParams{TaskID: "1", UpdateMask: []string{domain.FieldTitle}, Title: ptr.To(" ")})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	err = b.EditTask(ctx, domain.UpdateTaskParams{TaskID: "1", UpdateMask: []string{domain.FieldTitle}})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	assert.ErrorIs(t, b.EditTask(ctx, domain.UpdateTaskParams{TaskID: "1"}), domain.ErrEmptyPatch)

	require.NoError(t, b.EditTask(ctx, domain.UpdateTaskParams{
		TaskID:     "1",
		UpdateMask: []string{domain.FieldTitle, domain.FieldProgress},
		Title:      ptr.To("renamed"),
		Progress:   ptr.To(40),
	}))
	got, _ := b.Task("1")
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, 40, got.Progress)
}

func TestSectionsFollowFilters(t *testing.T) {
	ctx := context.Background()
	work := newTask("w", domain.StatusPending)
	work.Category = "Kerja"
	api := seeded(newTask("1", domain.StatusDone), work)
	b := board.New(api, board.Config{Now: clock})
	b.Refresh(ctx)

	sections := b.Sections()
	require.Len(t, sections, 2)

	f := view.DefaultFilters()
	f.Status = view.StatusTodo
	b.SetFilters(f)
	sections = b.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "Kerja", sections[0].Title)

	assert.Equal(t, 2, b.Summary().Total, "summary ignores filters")

	breakdown := b.Breakdown()
	require.Len(t, breakdown, 2)
	assert.Equal(t, today, b.Today())
}
