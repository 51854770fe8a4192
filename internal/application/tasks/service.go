package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/ptr"
)

// Config holds configuration for the Service.
type Config struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Service provides the task CRUD contract and the category registry.
// It validates and normalizes input at the boundary and delegates
// persistence to the Repository.
type Service struct {
	repo   Repository
	config Config
}

// NewService creates a new task service.
// Applies defaults for zero config values.
func NewService(repo Repository, config Config) *Service {
	if config.Now == nil {
		config.Now = time.Now
	}

	return &Service{
		repo:   repo,
		config: config,
	}
}

func (s *Service) now() time.Time {
	return s.config.Now().UTC()
}

// ListTasks returns every task, most recently updated first.
func (s *Service) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task or domain.ErrTaskNotFound.
func (s *Service) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if id == "" {
		return nil, domain.ErrTaskNotFound
	}

	task, err := s.repo.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err // Repository returns domain errors
	}
	return task, nil
}

// CreateTask validates task, applies defaults and persists it.
// The caller supplies the id; nothing is returned on success.
func (s *Service) CreateTask(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		return domain.ErrIDRequired
	}

	title, err := domain.NewTitle(task.Title)
	if err != nil {
		return err
	}

	priority, err := domain.NewPriority(string(task.Priority))
	if err != nil {
		return err
	}

	status, err := domain.NewStatus(string(task.Status))
	if err != nil {
		return err
	}

	progress, err := domain.NewProgress(task.Progress)
	if err != nil {
		return err
	}

	var deadline *string
	if task.Deadline != nil {
		if deadline, err = domain.NewDeadline(*task.Deadline); err != nil {
			return err
		}
	}

	category, err := s.resolveCategory(ctx, task.Category)
	if err != nil {
		return err
	}

	created := &domain.Task{
		ID:          task.ID,
		Title:       title.String(),
		Description: task.Description,
		Deadline:    deadline,
		Category:    category,
		Priority:    priority,
		Status:      status,
		Progress:    progress,
		UpdatedAt:   s.now(),
	}

	if err := s.repo.CreateTask(ctx, created); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// UpdateTask applies a partial update. Only fields in params.UpdateMask change.
func (s *Service) UpdateTask(ctx context.Context, params domain.UpdateTaskParams) error {
	if params.TaskID == "" {
		return domain.ErrTaskNotFound
	}

	if err := params.Validate(); err != nil {
		return err
	}

	if params.Has(domain.FieldTitle) {
		title, err := domain.NewTitle(*params.Title)
		if err != nil {
			return err
		}
		params.Title = ptr.To(title.String())
	}

	if params.Has(domain.FieldDeadline) && params.Deadline != nil {
		deadline, err := domain.NewDeadline(*params.Deadline)
		if err != nil {
			return err
		}
		params.Deadline = deadline
	}

	if params.Has(domain.FieldCategory) {
		category, err := s.resolveCategory(ctx, *params.Category)
		if err != nil {
			return err
		}
		params.Category = &category
	}

	if params.Has(domain.FieldPriority) {
		priority, err := domain.NewPriority(string(*params.Priority))
		if err != nil {
			return err
		}
		params.Priority = &priority
	}

	if params.Has(domain.FieldStatus) {
		status, err := domain.NewStatus(string(*params.Status))
		if err != nil {
			return err
		}
		params.Status = &status
	}

	if params.Has(domain.FieldProgress) {
		if _, err := domain.NewProgress(*params.Progress); err != nil {
			return err
		}
	}

	params.UpdatedAt = s.now()

	return s.repo.UpdateTask(ctx, params)
}

// DeleteTask removes a single task.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrTaskNotFound
	}
	return s.repo.DeleteTask(ctx, id)
}

// ListCategories returns the registered categories in creation order.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory registers a new category. Keys are unique ignoring case;
// an empty colour is picked from the palette.
func (s *Service) CreateCategory(ctx context.Context, key, color string) (domain.Category, error) {
	existing, err := s.ListCategories(ctx)
	if err != nil {
		return domain.Category{}, err
	}

	category, err := domain.NewCategory(key, color, len(existing))
	if err != nil {
		return domain.Category{}, err
	}

	if _, found := domain.FindCategory(existing, category.Key); found {
		return domain.Category{}, fmt.Errorf("%w: %s", domain.ErrCategoryExists, category.Key)
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return domain.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// resolveCategory defaults an empty key and canonicalizes the spelling of
// registered categories. Unregistered keys are kept as given.
func (s *Service) resolveCategory(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.DefaultCategory, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve category: %w", err)
	}
	if c, ok := domain.FindCategory(categories, key); ok {
		return c.Key, nil
	}
	return key, nil
}
