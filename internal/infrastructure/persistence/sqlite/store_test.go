package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rezkam/taskmate/internal/application/tasks"
	"github.com/rezkam/taskmate/internal/infrastructure/persistence/compliance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), DBConfig{
		DSN:         "sqlite://" + filepath.Join(t.TempDir(), "taskmate.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	return store
}

func TestSQLiteStore_Compliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func() (tasks.Repository, func()) {
		store := newTestStore(t)
		return store, func() { _ = store.Close() }
	})
}

func TestSQLiteStore_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskmate.db")
	ctx := context.Background()

	for range 2 {
		store, err := NewStore(ctx, DBConfig{DSN: path, AutoMigrate: true})
		require.NoError(t, err)

		categories, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 1)
		require.NoError(t, store.Close())
	}
}

func TestSQLiteStore_Ping(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	require.NoError(t, store.Ping(context.Background()))
}

func TestDataSource(t *testing.T) {
	assert.Equal(t, "/tmp/a.db", DataSource("sqlite:///tmp/a.db"))
	assert.Equal(t, "file:a.db?mode=rwc", DataSource("file:a.db?mode=rwc"))
	assert.Equal(t, "a.db", DataSource("a.db"))
}
