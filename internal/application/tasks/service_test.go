package tasks

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository used to exercise service rules
// without a database.
type memRepo struct {
	mu         sync.Mutex
	tasks      map[string]*domain.Task
	categories []domain.Category

	failCreate error
}

func newMemRepo() *memRepo {
	return &memRepo{
		tasks:      make(map[string]*domain.Task),
		categories: domain.DefaultCategories(),
	}
}

func (m *memRepo) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t.Clone())
	}
	slices.SortFunc(out, func(a, b *domain.Task) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (m *memRepo) FindTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (m *memRepo) CreateTask(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate != nil {
		return m.failCreate
	}
	if _, ok := m.tasks[task.ID]; ok {
		return domain.ErrDuplicateID
	}
	m.tasks[task.ID] = task.Clone()
	return nil
}

func (m *memRepo) UpdateTask(ctx context.Context, params domain.UpdateTaskParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[params.TaskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	params.Apply(t)
	return nil
}

func (m *memRepo) DeleteTask(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.categories), nil
}

func (m *memRepo) CreateCategory(ctx context.Context, category domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := domain.FindCategory(m.categories, category.Key); ok {
		return domain.ErrCategoryExists
	}
	m.categories = append(m.categories, category)
	return nil
}

// fixedClock returns a clock that advances one second per call so that
// updated_at ordering is deterministic.
func fixedClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2025, 10, 7, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, Config{Now: fixedClock()}), repo
}

func TestCreateTask_AppliesDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateTask(ctx, &domain.Task{ID: "1", Title: "Buy milk"}))

	got, err := svc.GetTask(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "Umum", got.Category)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, 0, got.Progress)
	assert.Nil(t, got.Deadline)
	assert.Nil(t, got.Description)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestCreateTask_NormalizesFields(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	repo.categories = append(repo.categories, domain.Category{Key: "Kuliah", Color: "#2563eb"})

	require.NoError(t, svc.CreateTask(ctx, &domain.Task{
		ID:       "2",
		Title:    "  Essay  ",
		Deadline: ptr.To("2025-10-07T17:00:00.000Z"),
		Category: "kuliah",
		Priority: "high",
		Status:   "DONE",
		Progress: 100,
	}))

	got, err := svc.GetTask(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Essay", got.Title)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, "2025-10-07", *got.Deadline)
	assert.Equal(t, "Kuliah", got.Category)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, 100, got.Progress)
}

func TestCreateTask_UnregisteredCategoryKept(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateTask(ctx, &domain.Task{ID: "3", Title: "x", Category: "Hobi"}))

	got, err := svc.GetTask(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Hobi", got.Category)
	assert.Len(t, repo.categories, 1, "creating a task must not register categories")
}

func TestCreateTask_ValidationLeavesStoreUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		task    *domain.Task
		wantErr error
	}{
		{"missing id", &domain.Task{Title: "x"}, domain.ErrIDRequired},
		{"missing title", &domain.Task{ID: "1"}, domain.ErrTitleRequired},
		{"blank title", &domain.Task{ID: "1", Title: "   "}, domain.ErrTitleRequired},
		{"bad priority", &domain.Task{ID: "1", Title: "x", Priority: "Urgent"}, domain.ErrInvalidPriority},
		{"bad status", &domain.Task{ID: "1", Title: "x", Status: "archived"}, domain.ErrInvalidStatus},
		{"bad progress", &domain.Task{ID: "1", Title: "x", Progress: 150}, domain.ErrInvalidProgress},
		{"bad deadline", &domain.Task{ID: "1", Title: "x", Deadline: ptr.To("soon")}, domain.ErrInvalidDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			ctx := context.Background()

			err := svc.CreateTask(ctx, tt.task)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)

			all, err := svc.ListTasks(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestCreateTask_StoreFailureIsWrapped(t *testing.T) {
	svc, repo := newTestService()
	storeErr := errors.New("connection refused")
	repo.failCreate = storeErr

	err := svc.CreateTask(context.Background(), &domain.Task{ID: "1", Title: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateTask_PartialFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateTask(ctx, &domain.Task{
		ID:          "1",
		Title:       "Buy milk",
		Description: ptr.To("2 litres"),
		Priority:    "Medium",
	}))

	err := svc.UpdateTask(ctx, domain.UpdateTaskParams{
		TaskID:     "1",
		UpdateMask: []string{domain.FieldStatus, domain.FieldDeadline},
		Status:     ptr.To(domain.StatusDone),
		Deadline:   ptr.To("2025-11-01T00:00:00Z"),
	})
	require.NoError(t, err)

	got, err := svc.GetTask(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, "2025-11-01", *got.Deadline)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2 litres", *got.Description)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
}

func TestUpdateTask_StampsUpdatedAtAndReorders(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateTask(ctx, &domain.Task{ID: "a", Title: "first"}))
	require.NoError(t, svc.CreateTask(ctx, &domain.Task{ID: "b", Title: "second"}))

	all, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, taskIDs(all))

	require.NoError(t, svc.UpdateTask(ctx, domain.UpdateTaskParams{
		TaskID:     "a",
		UpdateMask: []string{domain.FieldProgress},
		Progress:   ptr.To(40),
	}))

	all, err = svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, taskIDs(all))
}

func TestUpdateTask_Errors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.CreateTask(ctx, &domain.Task{ID: "1", Title: "x"}))

	err := svc.UpdateTask(ctx, domain.UpdateTaskParams{TaskID: "1"})
	assert.ErrorIs(t, err, domain.ErrEmptyPatch)

	err = svc.UpdateTask(ctx, domain.UpdateTaskParams{
		TaskID:     "missing",
		UpdateMask: []string{domain.FieldStatus},
		Status:     ptr.To(domain.StatusDone),
	})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	err = svc.UpdateTask(ctx, domain.UpdateTaskParams{
		TaskID:     "1",
		UpdateMask: []string{domain.FieldPriority},
		Priority:   ptr.To(domain.Priority("Urgent")),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)

	err = svc.UpdateTask(ctx, domain.UpdateTaskParams{
		TaskID:     "1",
		UpdateMask: []string{domain.FieldTitle},
		Title:      ptr.To("  "),
	})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)
}

func TestDeleteTask(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.CreateTask(ctx, &domain.Task{ID: "1", Title: "x"}))

	require.NoError(t, svc.DeleteTask(ctx, "1"))
	_, err := svc.GetTask(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	assert.ErrorIs(t, svc.DeleteTask(ctx, "missing-id"), domain.ErrTaskNotFound)
}

func TestCreateCategory(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "Kuliah", "")
	require.NoError(t, err)
	assert.Equal(t, "Kuliah", c.Key)
	assert.Equal(t, domain.PickColor(1), c.Color)

	_, err = svc.CreateCategory(ctx, "KULIAH", "#000000")
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	_, err = svc.CreateCategory(ctx, "", "#000000")
	assert.ErrorIs(t, err, domain.ErrCategoryKeyRequired)

	all, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func taskIDs(tasks []*domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
