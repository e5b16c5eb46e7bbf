package keys

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"sync"

	"github.com/zeebo/blake3"
)

// fingerprintSize is the number of digest bytes shown in a fingerprint.
const fingerprintSize = 8

// Manager produces independent signing keypairs.
type Manager struct {
	reader io.Reader
}

// Option configures a Manager.
type Option func(*Manager)

// WithReader overrides the entropy source. Intended for tests.
func WithReader(r io.Reader) Option {
	return func(m *Manager) {
		if r != nil {
			m.reader = r
		}
	}
}

// NewManager returns a Manager backed by crypto/rand.
func NewManager(opts ...Option) *Manager {
	m := &Manager{reader: rand.Reader}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Generate creates a new P-256 keypair. No two calls share key material.
func (m *Manager) Generate(ctx context.Context) (*Keypair, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrKeyGeneration, err)
	}

	priv, err := ecdsa.GenerateKey(elliptic.P256(), m.reader)
	if err != nil {
		return nil, errors.Join(ErrKeyGeneration, err)
	}

	fp, err := fingerprint(&priv.PublicKey)
	if err != nil {
		return nil, errors.Join(ErrKeyGeneration, err)
	}

	return &Keypair{
		private:     priv,
		public:      &priv.PublicKey,
		fingerprint: fp,
	}, nil
}

// Keypair owns one session's signing key. The zero value is unusable.
type Keypair struct {
	mu          sync.RWMutex
	private     *ecdsa.PrivateKey
	public      *ecdsa.PublicKey
	fingerprint string
}

// Public returns the verification key. It stays available after Destroy so
// that already issued tokens can still be checked.
func (k *Keypair) Public() *ecdsa.PublicKey {
	return k.public
}

// PrivateKey returns the signing key or ErrKeyDestroyed.
func (k *Keypair) PrivateKey() (*ecdsa.PrivateKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.private == nil {
		return nil, ErrKeyDestroyed
	}
	return k.private, nil
}

// Fingerprint returns the hex BLAKE3 prefix of the uncompressed public point.
func (k *Keypair) Fingerprint() string {
	return k.fingerprint
}

// Destroyed reports whether Destroy has run.
func (k *Keypair) Destroyed() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.private == nil
}

// Destroy zeroes the private scalar and drops the reference. Idempotent.
func (k *Keypair) Destroy() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.private == nil {
		return
	}
	if k.private.D != nil {
		clear(k.private.D.Bits())
		k.private.D.SetInt64(0)
	}
	k.private = nil
}

func fingerprint(pub *ecdsa.PublicKey) (string, error) {
	ecdhPub, err := pub.ECDH()
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(ecdhPub.Bytes())
	return hex.EncodeToString(sum[:fingerprintSize]), nil
}
