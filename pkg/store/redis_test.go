package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopass/biopass/pkg/store"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	_, client := newTestRedis(t)
	s := store.NewRedisStore(client)
	t.Cleanup(func() { _ = s.Close() })

	runStoreContract(t, s)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mr, client := newTestRedis(t)
	s := store.NewRedisStore(client, store.WithRedisPrefix("biopass:"), store.WithRedisTTL(2*time.Minute))
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(ctx, "bio-pass-session", []byte("meta")))

	assert.True(t, mr.Exists("biopass:bio-pass-session"))
	assert.False(t, mr.Exists("bio-pass-session"))
	assert.Equal(t, 2*time.Minute, mr.TTL("biopass:bio-pass-session"))

	mr.FastForward(2*time.Minute + time.Second)

	_, err := s.Get(ctx, "bio-pass-session")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestConnectRedis(t *testing.T) {
	t.Parallel()

	t.Run("connects to a live server", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)

		client, err := store.ConnectRedis(context.Background(), store.RedisConfig{
			ConnectionURL:  "redis://" + mr.Addr() + "/0",
			RetryAttempts:  1,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		assert.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		t.Parallel()
		_, err := store.ConnectRedis(context.Background(), store.RedisConfig{ConnectionURL: "://nope"})
		assert.ErrorIs(t, err, store.ErrInvalidConfig)
	})

	t.Run("rejects empty URL", func(t *testing.T) {
		t.Parallel()
		_, err := store.ConnectRedis(context.Background(), store.RedisConfig{})
		assert.ErrorIs(t, err, store.ErrInvalidConfig)
	})

	t.Run("reports unreachable server", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := store.ConnectRedis(context.Background(), store.RedisConfig{
			ConnectionURL:  "redis://" + addr + "/0",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, store.ErrNotReady)
	})
}
