package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopass/biopass/pkg/store"
)

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("defaults to memory", func(t *testing.T) {
		t.Parallel()
		b, err := store.Open(ctx, store.Config{}, nil)
		require.NoError(t, err)
		assert.IsType(t, &store.MemoryStore{}, b)
	})

	t.Run("local", func(t *testing.T) {
		t.Parallel()
		b, err := store.Open(ctx, store.Config{Driver: "local", Local: store.LocalConfig{Dir: t.TempDir()}}, nil)
		require.NoError(t, err)
		assert.IsType(t, &store.LocalStore{}, b)
	})

	t.Run("sqlite", func(t *testing.T) {
		t.Parallel()
		b, err := store.Open(ctx, store.Config{
			Driver: "SQLite",
			SQLite: store.SQLiteConfig{Path: filepath.Join(t.TempDir(), "s.db")},
		}, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close() })
		assert.IsType(t, &store.SQLiteStore{}, b)
	})

	t.Run("redis", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		b, err := store.Open(ctx, store.Config{
			Driver: "redis",
			Redis:  store.RedisConfig{ConnectionURL: "redis://" + mr.Addr(), Prefix: "bp:", RetryAttempts: 1},
		}, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close() })

		require.NoError(t, b.Set(ctx, "slot", []byte("v")))
		assert.True(t, mr.Exists("bp:slot"))
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()
		_, err := store.Open(ctx, store.Config{Driver: "etcd"}, nil)
		assert.ErrorIs(t, err, store.ErrUnknownDriver)
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		t.Parallel()
		_, err := store.Open(ctx, store.Config{Driver: "s3"}, nil)
		assert.ErrorIs(t, err, store.ErrInvalidConfig)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	check := store.Healthcheck(store.NewMemoryStore())
	assert.NoError(t, check(context.Background()))

	assert.ErrorIs(t, store.Healthcheck(nil)(context.Background()), store.ErrHealthcheckFailed)
}
