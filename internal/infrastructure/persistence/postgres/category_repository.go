package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rezkam/taskmate/internal/domain"
)

// ListCategories returns categories in creation order.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.pool.Query(ctx, `SELECT key, color FROM categories ORDER BY created_at, key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(&c.Key, &c.Color)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return categories, nil
}

// CreateCategory inserts a category; keys clash ignoring case.
func (s *Store) CreateCategory(ctx context.Context, category domain.Category) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO categories (key, color) VALUES ($1, $2)`,
		category.Key, category.Color,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrCategoryExists, category.Key)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}
