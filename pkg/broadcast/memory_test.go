package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopass/biopass/pkg/broadcast"
)

func receive[T any](t *testing.T, sub broadcast.Subscriber[T]) T {
	t.Helper()
	select {
	case msg, ok := <-sub.Receive(context.Background()):
		require.True(t, ok, "channel closed")
		return msg.Data
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
	var zero T
	return zero
}

func TestMemoryBroadcaster_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("subscribe after close returns closed subscriber", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[string](1)
		require.NoError(t, b.Close())

		sub := b.Subscribe(context.Background())
		_, ok := <-sub.Receive(context.Background())
		assert.False(t, ok)
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[string](1)
		defer b.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := b.Subscribe(ctx)
		require.Equal(t, 1, b.Len())

		cancel()
		require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)

		_, ok := <-sub.Receive(context.Background())
		assert.False(t, ok)
		b.Wait()
	})
}

func TestMemoryBroadcaster_Broadcast(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every subscriber", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[int](1)
		defer b.Close()

		subs := make([]broadcast.Subscriber[int], 5)
		for i := range subs {
			subs[i] = b.Subscribe(context.Background())
		}

		require.NoError(t, b.Broadcast(context.Background(), broadcast.Message[int]{Data: 42}))
		for _, sub := range subs {
			assert.Equal(t, 42, receive(t, sub))
		}
	})

	t.Run("slow subscriber keeps only the newest message", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[int](1)
		defer b.Close()

		sub := b.Subscribe(context.Background())
		for i := 1; i <= 10; i++ {
			require.NoError(t, b.Broadcast(context.Background(), broadcast.Message[int]{Data: i}))
		}

		assert.Equal(t, 10, receive(t, sub))
		assert.Equal(t, 1, b.Len(), "slow subscriber must stay subscribed")
	})

	t.Run("larger buffer keeps the newest n", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[int](3)
		defer b.Close()

		sub := b.Subscribe(context.Background())
		for i := 1; i <= 5; i++ {
			require.NoError(t, b.Broadcast(context.Background(), broadcast.Message[int]{Data: i}))
		}

		assert.Equal(t, 3, receive(t, sub))
		assert.Equal(t, 4, receive(t, sub))
		assert.Equal(t, 5, receive(t, sub))
	})

	t.Run("broadcast after close is a no-op", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[string](1)
		require.NoError(t, b.Close())
		assert.NoError(t, b.Broadcast(context.Background(), broadcast.Message[string]{Data: "x"}))
	})

	t.Run("concurrent broadcasts do not block", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[int](1)
		defer b.Close()
		sub := b.Subscribe(context.Background())

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = b.Broadcast(context.Background(), broadcast.Message[int]{Data: i})
			}()
		}
		wg.Wait()

		got := receive(t, sub)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, 50)
	})
}

func TestMemoryBroadcaster_Close(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](1)
	sub := b.Subscribe(context.Background())

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, ok := <-sub.Receive(context.Background())
	assert.False(t, ok)
	assert.NoError(t, sub.Close())
}
