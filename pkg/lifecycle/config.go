package lifecycle

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/biopass/biopass/pkg/keys"
	"github.com/biopass/biopass/pkg/store"
)

// DefaultSlotKey names the single store slot holding the current session.
const DefaultSlotKey = "bio-pass-session"

// Config holds the environment-tunable controller settings.
type Config struct {
	Lifetime         time.Duration `env:"BIOPASS_LIFETIME" envDefault:"120s"`
	WarningThreshold time.Duration `env:"BIOPASS_WARNING_THRESHOLD" envDefault:"30s"`
	// TickInterval of zero disables the internal timer; call Tick instead.
	TickInterval time.Duration `env:"BIOPASS_TICK_INTERVAL" envDefault:"1s"`
	SlotKey      string        `env:"BIOPASS_SLOT_KEY" envDefault:"bio-pass-session"`
}

// DefaultConfig returns the same values as the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Lifetime:         120 * time.Second,
		WarningThreshold: 30 * time.Second,
		TickInterval:     time.Second,
		SlotKey:          DefaultSlotKey,
	}
}

// Validate checks the durations. Called by config.Load and New.
func (c *Config) Validate() error {
	if c.Lifetime < time.Second {
		return ErrInvalidLifetime
	}
	if c.WarningThreshold < 0 || c.WarningThreshold > c.Lifetime {
		return ErrInvalidThreshold
	}
	if c.TickInterval < 0 {
		return ErrInvalidTickPeriod
	}
	return nil
}

// KeyGenerator produces one keypair per session. *keys.Manager implements it.
type KeyGenerator interface {
	Generate(ctx context.Context) (*keys.Keypair, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig replaces all Config-backed settings at once.
func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

func WithLifetime(d time.Duration) Option {
	return func(c *Controller) { c.cfg.Lifetime = d }
}

func WithExpiryWarningThreshold(d time.Duration) Option {
	return func(c *Controller) { c.cfg.WarningThreshold = d }
}

func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) { c.cfg.TickInterval = d }
}

// WithSlotKey sets the store key. Blank keys are ignored.
func WithSlotKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.cfg.SlotKey = key
		}
	}
}

// WithStore sets the persistence adapter. Defaults to a MemoryStore.
func WithStore(s store.Store) Option {
	return func(c *Controller) {
		if s != nil {
			c.store = s
		}
	}
}

// WithClock sets the wall clock used for iat and exp.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func WithKeyGenerator(g KeyGenerator) Option {
	return func(c *Controller) {
		if g != nil {
			c.keygen = g
		}
	}
}

// WithRandomReader sets the source of session ids and nonces.
func WithRandomReader(r io.Reader) Option {
	return func(c *Controller) { c.randReader = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// OnPersistenceError registers fn to receive the first store failure of
// each session. fn runs with the controller locked and must not call back
// into it.
func OnPersistenceError(fn func(error)) Option {
	return func(c *Controller) { c.onPersistErr = fn }
}
