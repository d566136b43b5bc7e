package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mediums(t *testing.T) map[string]Medium {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sqlite, err := NewSQLiteMedium(filepath.Join(t.TempDir(), "offline.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Medium{
		"redis":  NewRedisMediumFromClient(client),
		"sqlite": sqlite,
	}
}

func TestMediumRoundTrip(t *testing.T) {
	for name, medium := range mediums(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := medium.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, medium.Set(ctx, "k", []byte(`{"v":1}`)))
			got, err := medium.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"v":1}`), got)

			// Overwrite wins.
			require.NoError(t, medium.Set(ctx, "k", []byte(`{"v":2}`)))
			got, err = medium.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"v":2}`), got)

			require.NoError(t, medium.Delete(ctx, "k"))
			_, err = medium.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting what is already gone is quiet.
			assert.NoError(t, medium.Delete(ctx, "k"))
		})
	}
}

func TestMediumKeysByPrefix(t *testing.T) {
	for name, medium := range mediums(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, medium.Set(ctx, "offline_cache_jobs_list", []byte("a")))
			require.NoError(t, medium.Set(ctx, "offline_cache_offline_queue", []byte("b")))
			require.NoError(t, medium.Set(ctx, "other_key", []byte("c")))

			keys, err := medium.Keys(ctx, "offline_cache_")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"offline_cache_jobs_list", "offline_cache_offline_queue"}, keys)
		})
	}
}
