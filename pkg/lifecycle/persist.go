package lifecycle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/biopass/biopass/pkg/logger"
	"github.com/biopass/biopass/pkg/store"
	"github.com/biopass/biopass/pkg/token"
)

const storeTimeout = 5 * time.Second

// encodeSlot obfuscates claims for the store. Not a confidentiality control.
func encodeSlot(claims token.Claims) ([]byte, error) {
	raw, err := json.Marshal(claims)
	if err != nil {
		return nil, err
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

func decodeSlot(value []byte) (token.Claims, error) {
	var claims token.Claims
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(value)))
	n, err := base64.StdEncoding.Decode(raw, value)
	if err != nil {
		return claims, err
	}
	if err := json.Unmarshal(raw[:n], &claims); err != nil {
		return claims, err
	}
	if claims.SessionID == "" {
		return claims, errors.New("missing session id")
	}
	return claims, nil
}

// storeContext detaches store calls from caller cancellation but bounds them.
func storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
}

func (c *Controller) persistLocked(ctx context.Context, claims token.Claims) {
	value, err := encodeSlot(claims)
	if err == nil {
		sctx, cancel := storeContext(ctx)
		err = c.store.Set(sctx, c.cfg.SlotKey, value)
		cancel()
	}
	if err != nil {
		c.persistenceFailedLocked(ctx, "write", err)
	}
}

func (c *Controller) removeSlotLocked(ctx context.Context) {
	sctx, cancel := storeContext(ctx)
	defer cancel()
	if err := c.store.Remove(sctx, c.cfg.SlotKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		c.persistenceFailedLocked(ctx, "remove", err)
	}
}

// persistenceFailedLocked surfaces the first store failure of a session.
// The in-memory session stays authoritative.
func (c *Controller) persistenceFailedLocked(ctx context.Context, op string, err error) {
	if c.persistFailed {
		return
	}
	c.persistFailed = true

	err = errors.Join(ErrPersistenceWrite, fmt.Errorf("%s slot %q: %w", op, c.cfg.SlotKey, err))
	c.log.WarnContext(ctx, "session metadata not persisted", logger.Event(op), logger.Error(err))
	if c.onPersistErr != nil {
		c.onPersistErr(err)
	}
}

// Recover clears a slot left behind by an earlier process and returns the
// claims it held. Its keypair died with that process, so the session cannot
// be resumed. Returns nil, nil when the slot is empty.
func (c *Controller) Recover(ctx context.Context) (*token.Claims, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.generating || c.State().Status.Active() {
		return nil, ErrSessionActive
	}

	sctx, cancel := storeContext(ctx)
	defer cancel()

	value, err := c.store.Get(sctx, c.cfg.SlotKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lifecycle: read slot %q: %w", c.cfg.SlotKey, err)
	}

	claims, decodeErr := decodeSlot(value)
	if err := c.store.Remove(sctx, c.cfg.SlotKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Join(ErrPersistenceWrite, err)
	}
	if decodeErr != nil {
		c.log.WarnContext(ctx, "discarded unreadable session slot", logger.Error(decodeErr))
		return nil, errors.Join(ErrCorruptSlot, decodeErr)
	}

	c.log.InfoContext(ctx, "cleared orphaned session",
		logger.SessionPrefix(claims.SessionID),
		logger.TimeLeft(claims.TimeLeft(c.now())),
	)
	return &claims, nil
}
