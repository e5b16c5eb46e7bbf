package store

import (
	"context"
	"io"
	"strings"
)

// Store is the single-slot persistence adapter used by the lifecycle controller.
type Store interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Missing keys are not an error.
	Remove(ctx context.Context, key string) error
}

// Backend is a Store that owns connections and can report its health.
type Backend interface {
	Store
	io.Closer
	Ping(ctx context.Context) error
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
