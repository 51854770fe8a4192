package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/ptr"
)

const taskColumns = `id, title, description, deadline::text, category, priority, status, progress, updated_at`

// checkRowsAffected maps an UPDATE/DELETE that matched nothing to domain.ErrTaskNotFound.
func checkRowsAffected(rowsAffected int64, id string) error {
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t                     domain.Task
		priority, status      string
		description, deadline *string
		updatedAt             time.Time
	)
	if err := row.Scan(&t.ID, &t.Title, &description, &deadline, &t.Category, &priority, &status, &t.Progress, &updatedAt); err != nil {
		return nil, err
	}
	t.Description = description
	if deadline != nil {
		d := domain.NormalizeDate(*deadline)
		t.Deadline = &d
	}
	t.Priority = domain.Priority(priority)
	t.Status = domain.Status(status)
	t.UpdatedAt = updatedAt.UTC()
	return &t, nil
}

// ListTasks returns every task, most recently updated first.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// FindTaskByID retrieves a single task.
func (s *Store) FindTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// CreateTask inserts a task. created_at and updated_at both take task.UpdatedAt.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, title, description, deadline, category, priority, status, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4::text::date, $5, $6, $7, $8, $9, $9)`,
		task.ID,
		task.Title,
		task.Description,
		task.Deadline,
		task.Category,
		string(task.Priority),
		string(task.Status),
		task.Progress,
		task.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, task.ID)
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// UpdateTask writes the masked fields and updated_at.
func (s *Store) UpdateTask(ctx context.Context, params domain.UpdateTaskParams) error {
	var (
		sets []string
		args []any
	)
	set := func(column, cast string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d%s", column, len(args), cast))
	}

	for _, field := range domain.UpdatableTaskFields {
		if !params.Has(field) {
			continue
		}
		switch field {
		case domain.FieldTitle:
			set("title", "", params.Title)
		case domain.FieldDescription:
			set("description", "", params.Description)
		case domain.FieldDeadline:
			set("deadline", "::text::date", params.Deadline)
		case domain.FieldCategory:
			set("category", "", params.Category)
		case domain.FieldPriority:
			set("priority", "", ptr.ToString(params.Priority))
		case domain.FieldStatus:
			set("status", "", ptr.ToString(params.Status))
		case domain.FieldProgress:
			set("progress", "", params.Progress)
		}
	}
	if len(sets) == 0 {
		return domain.ErrEmptyPatch
	}
	set("updated_at", "", params.UpdatedAt)

	args = append(args, params.TaskID)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), params.TaskID)
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), id)
}
