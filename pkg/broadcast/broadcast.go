package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
type Subscriber[T any] interface {
	// Receive returns the delivery channel. It is closed when the
	// subscriber or its broadcaster is closed.
	Receive(ctx context.Context) <-chan Message[T]

	// Close is idempotent.
	Close() error
}

// Broadcaster sends messages to multiple subscribers without blocking.
type Broadcaster[T any] interface {
	// Subscribe registers a subscriber for the lifetime of ctx.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers msg to every subscriber, displacing the oldest
	// undelivered message of any subscriber whose buffer is full.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close closes every subscriber. Later calls to Subscribe return closed
	// subscribers and Broadcast becomes a no-op.
	Close() error
}

type subscriber[T any] struct {
	ch     chan Message[T]
	closed bool
	mu     sync.Mutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], bufferSize)}
}

func (s *subscriber[T]) Receive(context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send never blocks: on a full buffer it discards the oldest pending message
// and retries. Holding mu keeps concurrent senders from interleaving.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	for {
		select {
		case s.ch <- msg:
			return true
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}
