// Package compliance holds the behaviour every preferences.Store must share.
package compliance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/taskmate/internal/infrastructure/preferences"
)

// RunStoreComplianceTest runs the shared checks. setup returns a fresh,
// empty store and a teardown func.
func RunStoreComplianceTest(t *testing.T, setup func() (preferences.Store, func())) {
	t.Run("PutThenGet", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, "theme", []byte(`"dark"`)))

		got, err := store.Get(ctx, "theme")
		require.NoError(t, err)
		assert.JSONEq(t, `"dark"`, string(got))
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, "theme", []byte(`"dark"`)))
		require.NoError(t, store.Put(ctx, "theme", []byte(`"light"`)))

		got, err := store.Get(ctx, "theme")
		require.NoError(t, err)
		assert.JSONEq(t, `"light"`, string(got))
	})

	t.Run("GetMissing", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()

		_, err := store.Get(context.Background(), "never-written")
		assert.ErrorIs(t, err, preferences.ErrNotFound)
	})

	t.Run("Keys", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys)

		require.NoError(t, store.Put(ctx, "theme", []byte(`"dark"`)))
		require.NoError(t, store.Put(ctx, "filters", []byte(`{"status":"todo"}`)))

		keys, err = store.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"filters", "theme"}, keys)
	})

	t.Run("RejectsPathLikeKeys", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		for _, key := range []string{"", "../escape", "a/b", "with space"} {
			assert.ErrorIs(t, store.Put(ctx, key, []byte(`1`)), preferences.ErrInvalidKey, key)
			_, err := store.Get(ctx, key)
			assert.ErrorIs(t, err, preferences.ErrInvalidKey, key)
		}
	})
}
