package lifecycle

import (
	"fmt"

	"github.com/biopass/biopass/pkg/logger"
	"github.com/biopass/biopass/pkg/token"
)

// Status is the lifecycle status of the current session.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusValid    Status = "valid"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// Active reports whether the status describes a live session.
func (s Status) Active() bool {
	return s == StatusValid || s == StatusExpiring
}

// State is an immutable snapshot of the controller. Session and Token are
// set while Active, and kept after natural expiry for display only.
type State struct {
	Status   Status
	Session  *token.Claims
	Token    string
	TimeLeft int
}

// View is what a renderer may see: no key material and only a prefix of the
// session id.
type View struct {
	Status        Status `json:"status"`
	Token         string `json:"token,omitempty"`
	TimeLeft      int    `json:"timeLeft"`
	SessionPrefix string `json:"sessionPrefix,omitempty"`
}

// View projects the snapshot for rendering.
func (s State) View() View {
	v := View{Status: s.Status, Token: s.Token, TimeLeft: s.TimeLeft}
	if s.Session != nil {
		v.SessionPrefix = s.Session.SessionID
		if len(v.SessionPrefix) > logger.SessionPrefixLen {
			v.SessionPrefix = v.SessionPrefix[:logger.SessionPrefixLen]
		}
	}
	return v
}

// Clock formats TimeLeft as m:ss.
func (v View) Clock() string {
	t := max(v.TimeLeft, 0)
	return fmt.Sprintf("%d:%02d", t/60, t%60)
}

// statusFor maps remaining seconds to a status given the warning threshold.
func statusFor(timeLeft, threshold int) Status {
	switch {
	case timeLeft <= 0:
		return StatusExpired
	case timeLeft < threshold:
		return StatusExpiring
	default:
		return StatusValid
	}
}
