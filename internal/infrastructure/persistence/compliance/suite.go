// Package compliance holds the behaviour every tasks.Repository
// implementation must share, as a reusable test suite.
package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rezkam/taskmate/internal/application/tasks"
	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 10, 7, 9, 0, 0, 0, time.UTC)

func newTask(title string, at time.Time) *domain.Task {
	return &domain.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Category:  domain.DefaultCategory,
		Priority:  domain.DefaultPriority,
		Status:    domain.DefaultStatus,
		UpdatedAt: at,
	}
}

// RunRepositoryComplianceTest runs a standard set of tests against a Repository.
// setup returns a fresh (empty) repository and a teardown function.
func RunRepositoryComplianceTest(t *testing.T, setup func() (tasks.Repository, func())) {
	t.Run("CreateAndFind", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		task := newTask("Write report", baseTime)
		task.Description = ptr.To("quarterly")
		task.Deadline = ptr.To("2025-10-31")
		task.Category = "Kerja"
		task.Priority = domain.PriorityHigh
		task.Progress = 30
		require.NoError(t, repo.CreateTask(ctx, task))

		got, err := repo.FindTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, "Write report", got.Title)
		assert.Equal(t, "quarterly", *got.Description)
		assert.Equal(t, "2025-10-31", *got.Deadline)
		assert.Equal(t, "Kerja", got.Category)
		assert.Equal(t, domain.PriorityHigh, got.Priority)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.Equal(t, 30, got.Progress)
		assert.True(t, baseTime.Equal(got.UpdatedAt), "updated_at round-trips")
	})

	t.Run("NullableFieldsStayNil", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		task := newTask("Bare", baseTime)
		require.NoError(t, repo.CreateTask(ctx, task))

		got, err := repo.FindTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.Deadline)
	})

	t.Run("FindMissing", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		_, err := repo.FindTaskByID(context.Background(), "missing-id")
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		task := newTask("Once", baseTime)
		require.NoError(t, repo.CreateTask(ctx, task))

		err := repo.CreateTask(ctx, task)
		assert.ErrorIs(t, err, domain.ErrDuplicateID)
	})

	t.Run("ListOrdersByUpdatedAtDesc", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		older := newTask("older", baseTime)
		newer := newTask("newer", baseTime.Add(time.Minute))
		require.NoError(t, repo.CreateTask(ctx, older))
		require.NoError(t, repo.CreateTask(ctx, newer))

		list, err := repo.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
		assert.Equal(t, older.ID, list[1].ID)

		require.NoError(t, repo.UpdateTask(ctx, domain.UpdateTaskParams{
			TaskID:     older.ID,
			UpdateMask: []string{domain.FieldProgress},
			Progress:   ptr.To(10),
			UpdatedAt:  baseTime.Add(time.Hour),
		}))

		list, err = repo.ListTasks(ctx)
		require.NoError(t, err)
		assert.Equal(t, older.ID, list[0].ID)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		list, err := repo.ListTasks(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("UpdateMaskedFieldsOnly", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		task := newTask("Original", baseTime)
		task.Description = ptr.To("keep me")
		task.Deadline = ptr.To("2025-12-01")
		require.NoError(t, repo.CreateTask(ctx, task))

		require.NoError(t, repo.UpdateTask(ctx, domain.UpdateTaskParams{
			TaskID:     task.ID,
			UpdateMask: []string{domain.FieldStatus, domain.FieldDeadline, domain.FieldPriority},
			Status:     ptr.To(domain.StatusDone),
			Priority:   ptr.To(domain.PriorityMedium),
			UpdatedAt:  baseTime.Add(time.Second),
		}))

		got, err := repo.FindTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Original", got.Title)
		assert.Equal(t, "keep me", *got.Description)
		assert.Nil(t, got.Deadline, "deadline in mask with nil value is cleared")
		assert.Equal(t, domain.StatusDone, got.Status)
		assert.Equal(t, domain.PriorityMedium, got.Priority)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		err := repo.UpdateTask(context.Background(), domain.UpdateTaskParams{
			TaskID:     "missing-id",
			UpdateMask: []string{domain.FieldTitle},
			Title:      ptr.To("x"),
			UpdatedAt:  baseTime,
		})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		task := newTask("Doomed", baseTime)
		require.NoError(t, repo.CreateTask(ctx, task))
		require.NoError(t, repo.DeleteTask(ctx, task.ID))

		_, err := repo.FindTaskByID(ctx, task.ID)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)

		assert.ErrorIs(t, repo.DeleteTask(ctx, task.ID), domain.ErrTaskNotFound)
	})

	t.Run("CategoriesSeededAndOrdered", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		categories, err := repo.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, domain.DefaultCategories()[0], categories[0])

		require.NoError(t, repo.CreateCategory(ctx, domain.Category{Key: "Kerja", Color: "#2563eb"}))
		time.Sleep(5 * time.Millisecond)
		require.NoError(t, repo.CreateCategory(ctx, domain.Category{Key: "Hobi", Color: "#16a34a"}))

		categories, err = repo.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 3)
		assert.Equal(t, "Umum", categories[0].Key)
		assert.Equal(t, "Kerja", categories[1].Key)
		assert.Equal(t, "Hobi", categories[2].Key)
	})

	t.Run("CategoryKeysUniqueIgnoringCase", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		err := repo.CreateCategory(ctx, domain.Category{Key: "umum", Color: "#000000"})
		assert.ErrorIs(t, err, domain.ErrCategoryExists)
	})
}
