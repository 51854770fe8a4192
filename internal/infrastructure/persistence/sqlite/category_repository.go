package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rezkam/taskmate/internal/domain"
)

// ListCategories returns categories in creation order.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, color FROM categories ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Key, &c.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// CreateCategory inserts a category. The key column is COLLATE NOCASE so
// keys clash ignoring case.
func (s *Store) CreateCategory(ctx context.Context, category domain.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (key, color, created_at) VALUES (?, ?, ?)`,
		category.Key, category.Color, time.Now().UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrCategoryExists, category.Key)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}
