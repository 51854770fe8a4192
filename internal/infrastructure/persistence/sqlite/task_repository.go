package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/ptr"
)

// updated_at and created_at are stored as unix nanoseconds.

const taskColumns = `id, title, description, deadline, category, priority, status, progress, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t                     domain.Task
		priority, status      string
		description, deadline sql.NullString
		updatedAt             int64
	)
	if err := row.Scan(&t.ID, &t.Title, &description, &deadline, &t.Category, &priority, &status, &t.Progress, &updatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		t.Description = ptr.To(description.String)
	}
	if deadline.Valid {
		t.Deadline = ptr.To(domain.NormalizeDate(deadline.String))
	}
	t.Priority = domain.Priority(priority)
	t.Status = domain.Status(status)
	t.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &t, nil
}

// ListTasks returns every task, most recently updated first.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY updated_at DESC, id`)
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
	t, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// CreateTask inserts a task.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	at := task.UpdatedAt.UnixNano()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, deadline, category, priority, status, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.Title,
		nullString(task.Description),
		nullString(task.Deadline),
		task.Category,
		string(task.Priority),
		string(task.Status),
		task.Progress,
		at,
		at,
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
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	for _, field := range domain.UpdatableTaskFields {
		if !params.Has(field) {
			continue
		}
		switch field {
		case domain.FieldTitle:
			set("title", nullString(params.Title))
		case domain.FieldDescription:
			set("description", nullString(params.Description))
		case domain.FieldDeadline:
			set("deadline", nullString(params.Deadline))
		case domain.FieldCategory:
			set("category", nullString(params.Category))
		case domain.FieldPriority:
			set("priority", nullString(ptr.ToString(params.Priority)))
		case domain.FieldStatus:
			set("status", nullString(ptr.ToString(params.Status)))
		case domain.FieldProgress:
			set("progress", params.Progress)
		}
	}
	if len(sets) == 0 {
		return domain.ErrEmptyPatch
	}
	set("updated_at", params.UpdatedAt.UnixNano())
	args = append(args, params.TaskID)

	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkRowsAffected(res, params.TaskID)
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkRowsAffected(res, id)
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
