package client

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rezkam/taskmate/internal/api"
	"github.com/rezkam/taskmate/internal/domain"
)

// LoadCategories returns the registered categories. On failure it returns
// domain.DefaultCategories so the UI still has something to group by.
func (c *Client) LoadCategories(ctx context.Context) []domain.Category {
	var dtos []api.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &dtos); err != nil {
		slog.WarnContext(ctx, "Failed to load categories, using defaults", "error", err)
		return domain.DefaultCategories()
	}

	categories := make([]domain.Category, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, dto.ToCategory())
	}
	return categories
}

// CreateCategory registers one category.
func (c *Client) CreateCategory(ctx context.Context, category domain.Category) bool {
	if err := c.do(ctx, http.MethodPost, "/categories", api.FromCategory(category), nil); err != nil {
		slog.WarnContext(ctx, "Failed to create category", "key", category.Key, "error", err)
		return false
	}
	return true
}

// SaveCategories creates the entries of next whose key is not registered
// yet, ignoring case. It reports whether every create succeeded.
func (c *Client) SaveCategories(ctx context.Context, next []domain.Category) bool {
	existing := make(map[string]bool)
	for _, cat := range c.LoadCategories(ctx) {
		existing[strings.ToLower(cat.Key)] = true
	}

	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, cat := range next {
		key := strings.ToLower(cat.Key)
		if existing[key] {
			continue
		}
		existing[key] = true
		g.Go(func() error {
			if !c.CreateCategory(gctx, cat) {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return failed.Load() == 0
}
