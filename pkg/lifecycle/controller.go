package lifecycle

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/biopass/biopass/pkg/broadcast"
	"github.com/biopass/biopass/pkg/keys"
	"github.com/biopass/biopass/pkg/logger"
	"github.com/biopass/biopass/pkg/random"
	"github.com/biopass/biopass/pkg/store"
	"github.com/biopass/biopass/pkg/token"
)

// Controller runs one session at a time. Construct it with New and release
// it with Close; one Controller per process.
type Controller struct {
	cfg          Config
	store        store.Store
	now          func() time.Time
	keygen       KeyGenerator
	randReader   io.Reader
	random       *random.Source
	log          *slog.Logger
	onPersistErr func(error)
	hub          *broadcast.MemoryBroadcaster[State]

	state atomic.Pointer[State]

	mu            sync.Mutex
	key           *keys.Keypair
	epoch         uint64
	generating    bool
	stopTick      chan struct{}
	persistFailed bool
	closed        bool
	wg            sync.WaitGroup
}

// New builds an idle Controller. Defaults: 120s lifetime, 30s warning
// threshold, 1s ticks, in-memory store, crypto/rand.
func New(opts ...Option) (*Controller, error) {
	c := &Controller{
		cfg:    DefaultConfig(),
		store:  store.NewMemoryStore(),
		now:    time.Now,
		keygen: keys.NewManager(),
		log:    logger.Discard(),
		hub:    broadcast.NewMemoryBroadcaster[State](1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cfg.SlotKey == "" {
		c.cfg.SlotKey = DefaultSlotKey
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	c.random = random.NewSource(c.randReader)
	c.log = c.log.With(logger.Component("lifecycle"))
	c.state.Store(&State{Status: StatusIdle})
	return c, nil
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return *c.state.Load()
}

// PublicKey returns the verification key of the live session, or nil.
func (c *Controller) PublicKey() *ecdsa.PublicKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.key == nil {
		return nil
	}
	return c.key.Public()
}

// Fingerprint identifies the live session's key for display, or "".
func (c *Controller) Fingerprint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.key == nil {
		return ""
	}
	return c.key.Fingerprint()
}

// Subscribe streams snapshots until ctx ends or the controller closes. The
// current snapshot is delivered first; slow readers only miss intermediate
// snapshots, never the latest.
func (c *Controller) Subscribe(ctx context.Context) broadcast.Subscriber[State] {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := c.hub.Subscribe(ctx)
	_ = c.hub.Broadcast(ctx, broadcast.Message[State]{Data: c.State()})
	return sub
}

// session is a fully built but not yet published session.
type session struct {
	claims token.Claims
	token  string
	key    *keys.Keypair
}

// Generate starts a session from idle or expired. Crypto failures leave the
// previous snapshot untouched. If Destroy or Close runs while the keys are
// being made, the new session is thrown away and ErrSessionDestroyed (or
// ErrClosed) is returned.
func (c *Controller) Generate(ctx context.Context) (State, error) {
	c.mu.Lock()
	if err := c.beginGenerateLocked(); err != nil {
		c.mu.Unlock()
		return c.State(), err
	}
	epoch := c.epoch
	c.mu.Unlock()

	return c.finishGenerate(ctx, epoch)
}

// Regenerate ends the current session, if any, and starts a new one. The
// old session ends in the same critical section that claims the generate
// slot, so no concurrent Generate can start in between.
func (c *Controller) Regenerate(ctx context.Context) (State, error) {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return c.State(), ErrClosed
	case c.generating:
		c.mu.Unlock()
		return c.State(), ErrGenerateInFlight
	}

	prev := c.State()
	if prev.Status.Active() {
		c.endLocked(ctx, prev, true)
		c.log.InfoContext(ctx, "session destroyed for regeneration",
			logger.SessionPrefix(prev.Session.SessionID),
			logger.Epoch(c.epoch),
		)
	}
	c.generating = true
	epoch := c.epoch
	c.mu.Unlock()

	return c.finishGenerate(ctx, epoch)
}

// finishGenerate builds a session outside the lock and commits it unless
// the epoch moved while it was being built. The caller must have set
// c.generating.
func (c *Controller) finishGenerate(ctx context.Context, epoch uint64) (State, error) {
	sess, err := c.build(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.generating = false

	if err != nil {
		c.log.ErrorContext(ctx, "session generation failed", logger.Error(err))
		return c.State(), err
	}
	if c.closed || c.epoch != epoch {
		sess.key.Destroy()
		c.log.InfoContext(ctx, "discarded session superseded while generating",
			logger.SessionPrefix(sess.claims.SessionID),
			logger.Epoch(c.epoch),
		)
		if c.closed {
			return c.State(), ErrClosed
		}
		return c.State(), ErrSessionDestroyed
	}

	c.commitLocked(ctx, sess)
	return c.State(), nil
}

// Destroy ends the session immediately from any status: the slot is removed,
// the key zeroed and the snapshot becomes expired with no session or token.
func (c *Controller) Destroy(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.State()
	}
	prev := c.State()
	c.endLocked(ctx, prev, true)
	c.log.InfoContext(ctx, "session destroyed",
		logger.Status(string(prev.Status)),
		logger.Epoch(c.epoch),
	)
	return c.State()
}

// Tick advances the countdown by one second when the controller was built
// with a zero TickInterval. With the internal timer running it is the only
// tick source, and Tick returns the current snapshot unchanged.
func (c *Controller) Tick(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg.TickInterval > 0 {
		return c.State()
	}
	c.tickLocked(ctx)
	return c.State()
}

// Close ends any session, stops the timer and closes subscribers. The
// Controller cannot be used afterwards.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.endLocked(context.Background(), c.State(), true)
	c.mu.Unlock()

	c.wg.Wait()
	return c.hub.Close()
}

func (c *Controller) beginGenerateLocked() error {
	if c.closed {
		return ErrClosed
	}
	if c.generating {
		return ErrGenerateInFlight
	}
	if from := c.State().Status; !can(from, EventGenerate) {
		return errors.Join(ErrSessionActive, &ErrInvalidTransition{From: from, Event: EventGenerate})
	}
	c.generating = true
	return nil
}

// build does the slow part of Generate without holding the lock.
func (c *Controller) build(ctx context.Context) (session, error) {
	id, err := c.random.SessionID()
	if err != nil {
		return session{}, err
	}
	nonce, err := c.random.Nonce()
	if err != nil {
		return session{}, err
	}

	key, err := c.keygen.Generate(ctx)
	if err != nil {
		return session{}, err
	}
	priv, err := key.PrivateKey()
	if err != nil {
		return session{}, errors.Join(keys.ErrKeyGeneration, err)
	}

	claims := token.NewClaims(id, nonce, c.now(), c.cfg.Lifetime)
	tok, err := token.Sign(claims, priv)
	if err != nil {
		key.Destroy()
		return session{}, err
	}
	return session{claims: claims, token: tok, key: key}, nil
}

func (c *Controller) commitLocked(ctx context.Context, sess session) {
	c.stopTimerLocked()
	c.epoch++
	c.key = sess.key
	c.persistFailed = false

	c.persistLocked(ctx, sess.claims)

	left := c.lifetimeSeconds()
	c.publishLocked(State{
		Status:   statusFor(left, c.thresholdSeconds()),
		Session:  &sess.claims,
		Token:    sess.token,
		TimeLeft: left,
	})
	c.startTimerLocked()

	c.log.InfoContext(ctx, "session started",
		logger.SessionPrefix(sess.claims.SessionID),
		logger.Fingerprint(sess.key.Fingerprint()),
		logger.TimeLeft(left),
		logger.Epoch(c.epoch),
	)
}

func (c *Controller) tickLocked(ctx context.Context) {
	cur := c.State()
	if !can(cur.Status, EventTick) {
		return
	}

	left := max(cur.TimeLeft-1, 0)
	next := statusFor(left, c.thresholdSeconds())
	if !allowed(cur.Status, EventTick, next) {
		c.log.ErrorContext(ctx, "rejected tick transition",
			logger.Status(string(next)),
			logger.TimeLeft(left),
		)
		return
	}

	if next == StatusExpired {
		c.endLocked(ctx, cur, false)
		c.log.InfoContext(ctx, "session expired",
			logger.SessionPrefix(cur.Session.SessionID),
			logger.Epoch(c.epoch),
		)
		return
	}

	c.publishLocked(State{Status: next, Session: cur.Session, Token: cur.Token, TimeLeft: left})
	if next != cur.Status {
		c.log.DebugContext(ctx, "session status changed",
			logger.Status(string(next)),
			logger.TimeLeft(left),
		)
	}
}

// endLocked is the single exit path of a session. The slot is removed before
// the expired snapshot is published. clearDisplay drops the session and
// token from the snapshot.
func (c *Controller) endLocked(ctx context.Context, prev State, clearDisplay bool) {
	c.stopTimerLocked()
	c.removeSlotLocked(ctx)
	if c.key != nil {
		c.key.Destroy()
		c.key = nil
	}
	c.epoch++

	next := State{Status: StatusExpired}
	if !clearDisplay {
		next.Session = prev.Session
		next.Token = prev.Token
	}
	c.publishLocked(next)
}

func (c *Controller) publishLocked(st State) {
	c.state.Store(&st)
	_ = c.hub.Broadcast(context.Background(), broadcast.Message[State]{Data: st})
}

func (c *Controller) startTimerLocked() {
	if c.cfg.TickInterval <= 0 {
		return
	}
	stop := make(chan struct{})
	c.stopTick = stop
	c.wg.Add(1)
	go c.run(c.epoch, stop)
}

func (c *Controller) stopTimerLocked() {
	if c.stopTick != nil {
		close(c.stopTick)
		c.stopTick = nil
	}
}

// run ticks for the session that owned epoch and exits once that session is
// over or its stop channel closes.
func (c *Controller) run(epoch uint64, stop <-chan struct{}) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.epoch != epoch {
				c.mu.Unlock()
				return
			}
			c.tickLocked(context.Background())
			c.mu.Unlock()
		}
	}
}

func (c *Controller) lifetimeSeconds() int {
	return int(c.cfg.Lifetime / time.Second)
}

func (c *Controller) thresholdSeconds() int {
	return int(c.cfg.WarningThreshold / time.Second)
}
