package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopass/biopass/pkg/store"
)

// runStoreContract checks the behavior every backend must share.
func runStoreContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get on empty slot returns ErrNotFound", func(t *testing.T) {
		v, err := s.Get(ctx, "contract-missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Nil(t, v)
	})

	t.Run("set then get round-trips bytes", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "contract-roundtrip", []byte("eyJzZXNzaW9uSWQiOiJhYmMifQ==")))

		v, err := s.Get(ctx, "contract-roundtrip")
		require.NoError(t, err)
		assert.Equal(t, []byte("eyJzZXNzaW9uSWQiOiJhYmMifQ=="), v)
	})

	t.Run("set overwrites the single slot", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "contract-slot", []byte("first")))
		require.NoError(t, s.Set(ctx, "contract-slot", []byte("second")))

		v, err := s.Get(ctx, "contract-slot")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), v)
	})

	t.Run("remove clears the slot", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "contract-remove", []byte("value")))
		require.NoError(t, s.Remove(ctx, "contract-remove"))

		_, err := s.Get(ctx, "contract-remove")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		assert.NoError(t, s.Remove(ctx, "contract-never-set"))
		assert.NoError(t, s.Remove(ctx, "contract-never-set"))
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		_, err := s.Get(ctx, "")
		assert.ErrorIs(t, err, store.ErrInvalidKey)
		assert.ErrorIs(t, s.Set(ctx, " ", []byte("x")), store.ErrInvalidKey)
		assert.ErrorIs(t, s.Remove(ctx, ""), store.ErrInvalidKey)
	})
}
