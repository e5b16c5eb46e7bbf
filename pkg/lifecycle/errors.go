package lifecycle

import (
	"errors"
	"fmt"
)

var (
	ErrSessionActive     = errors.New("lifecycle: a session is already active")
	ErrGenerateInFlight  = errors.New("lifecycle: generate already in progress")
	ErrSessionDestroyed  = errors.New("lifecycle: session destroyed while generating")
	ErrClosed            = errors.New("lifecycle: controller closed")
	ErrPersistenceWrite  = errors.New("lifecycle: persisting session metadata failed")
	ErrCorruptSlot       = errors.New("lifecycle: persisted session slot is unreadable")
	ErrInvalidLifetime   = errors.New("lifecycle: lifetime must be at least one second")
	ErrInvalidThreshold  = errors.New("lifecycle: warning threshold must be between zero and the lifetime")
	ErrInvalidTickPeriod = errors.New("lifecycle: tick interval must not be negative")
)

// ErrInvalidTransition reports an event that is not allowed from the current status.
type ErrInvalidTransition struct {
	From  Status
	Event Event
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("lifecycle: no transition from %q on %q", e.From, e.Event)
}

func IsInvalidTransitionError(err error) bool {
	var e *ErrInvalidTransition
	return errors.As(err, &e)
}
