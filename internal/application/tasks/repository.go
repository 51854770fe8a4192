package tasks

import (
	"context"

	"github.com/rezkam/taskmate/internal/domain"
)

// Repository defines persistence operations for tasks and categories.
// Implementations return domain errors (domain.ErrTaskNotFound,
// domain.ErrCategoryExists, domain.ErrDuplicateID); anything else is
// treated as a store failure.
type Repository interface {
	// ListTasks returns every task, most recently updated first.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// FindTaskByID returns domain.ErrTaskNotFound when no row matches.
	FindTaskByID(ctx context.Context, id string) (*domain.Task, error)

	// CreateTask inserts a fully defaulted, validated task.
	CreateTask(ctx context.Context, task *domain.Task) error

	// UpdateTask writes the masked fields only.
	// Returns domain.ErrTaskNotFound when no row matches.
	UpdateTask(ctx context.Context, params domain.UpdateTaskParams) error

	// DeleteTask returns domain.ErrTaskNotFound when no row matches.
	DeleteTask(ctx context.Context, id string) error

	// ListCategories returns categories in creation order.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// CreateCategory returns domain.ErrCategoryExists on a case-insensitive key clash.
	CreateCategory(ctx context.Context, category domain.Category) error
}
