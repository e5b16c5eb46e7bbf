package lifecycle_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/biopass/biopass/pkg/keys"
	"github.com/biopass/biopass/pkg/lifecycle"
	"github.com/biopass/biopass/pkg/store"
	"github.com/biopass/biopass/pkg/token"
)

// newManual returns a controller without an internal timer plus its store.
func newManual(t *testing.T, opts ...lifecycle.Option) (*lifecycle.Controller, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	opts = append([]lifecycle.Option{lifecycle.WithStore(mem), lifecycle.WithTickInterval(0)}, opts...)
	c, err := lifecycle.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mem
}

func generate(t *testing.T, c *lifecycle.Controller) lifecycle.State {
	t.Helper()
	st, err := c.Generate(context.Background())
	require.NoError(t, err)
	return st
}

func tickN(c *lifecycle.Controller, n int) lifecycle.State {
	var st lifecycle.State
	for range n {
		st = c.Tick(context.Background())
	}
	return st
}

func slotClaims(t *testing.T, s store.Store) (token.Claims, map[string]any) {
	t.Helper()
	value, err := s.Get(context.Background(), lifecycle.DefaultSlotKey)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(string(value))
	require.NoError(t, err)

	var claims token.Claims
	require.NoError(t, json.Unmarshal(raw, &claims))
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	return claims, fields
}

func encodeSlot(t *testing.T, claims token.Claims) []byte {
	t.Helper()
	raw, err := json.Marshal(claims)
	require.NoError(t, err)
	return []byte(base64.StdEncoding.EncodeToString(raw))
}

// blockingKeys parks Generate until release is closed.
type blockingKeys struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	inner   *keys.Manager
}

func newBlockingKeys() *blockingKeys {
	return &blockingKeys{
		started: make(chan struct{}),
		release: make(chan struct{}),
		inner:   keys.NewManager(),
	}
}

func (b *blockingKeys) Generate(ctx context.Context) (*keys.Keypair, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.inner.Generate(ctx)
}

// gatedKeys lets the first Generate through and parks later ones until open
// is closed.
type gatedKeys struct {
	mu    sync.Mutex
	calls int
	open  chan struct{}
	inner *keys.Manager
}

func (g *gatedKeys) Generate(ctx context.Context) (*keys.Keypair, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()
	if n > 1 {
		<-g.open
	}
	return g.inner.Generate(ctx)
}

// unsignableKeys hands out real keypairs whose private scalar is zero, so
// signing with them fails.
type unsignableKeys struct {
	mu     sync.Mutex
	issued []*keys.Keypair
	inner  *keys.Manager
}

func (u *unsignableKeys) Generate(ctx context.Context) (*keys.Keypair, error) {
	kp, err := u.inner.Generate(ctx)
	if err != nil {
		return nil, err
	}
	priv, err := kp.PrivateKey()
	if err != nil {
		return nil, err
	}
	priv.D.SetInt64(0)

	u.mu.Lock()
	u.issued = append(u.issued, kp)
	u.mu.Unlock()
	return kp, nil
}

type failingKeys struct{ err error }

func (f failingKeys) Generate(context.Context) (*keys.Keypair, error) {
	return nil, f.err
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	v, _ := args.Get(0).([]byte)
	return v, args.Error(1)
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
