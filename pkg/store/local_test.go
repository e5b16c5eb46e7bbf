package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopass/biopass/pkg/store"
)

func TestLocalStore(t *testing.T) {
	t.Parallel()

	s, err := store.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	runStoreContract(t, s)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestLocalStore_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "slots")
	s, err := store.NewLocalStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "bio-pass-session", []byte("meta")))

	data, err := os.ReadFile(filepath.Join(dir, "bio-pass-session"))
	require.NoError(t, err)
	assert.Equal(t, []byte("meta"), data)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := store.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape", "a/b", `a\b`, "..", "."} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, s.Set(ctx, key, []byte("x")), store.ErrInvalidKey)
			_, err := s.Get(ctx, key)
			assert.ErrorIs(t, err, store.ErrInvalidKey)
			assert.ErrorIs(t, s.Remove(ctx, key), store.ErrInvalidKey)
		})
	}
}

func TestLocalStore_EmptyDir(t *testing.T) {
	t.Parallel()

	_, err := store.NewLocalStore("")
	assert.ErrorIs(t, err, store.ErrInvalidConfig)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	t.Parallel()

	s, err := store.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "k", []byte("v")), context.Canceled)
}
