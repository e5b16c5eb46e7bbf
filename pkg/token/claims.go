package token

import "time"

// Claims identifies one session. Field order is the serialization order.
type Claims struct {
	SessionID string `json:"sessionId"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Nonce     string `json:"nonce"`
}

// NewClaims stamps iat from now (Unix seconds) and derives exp from lifetime.
func NewClaims(sessionID, nonce string, now time.Time, lifetime time.Duration) Claims {
	iat := now.Unix()
	return Claims{
		SessionID: sessionID,
		IssuedAt:  iat,
		ExpiresAt: iat + int64(lifetime/time.Second),
		Nonce:     nonce,
	}
}

// Lifetime returns exp - iat.
func (c Claims) Lifetime() time.Duration {
	return time.Duration(c.ExpiresAt-c.IssuedAt) * time.Second
}

// TimeLeft returns the whole seconds left before exp, never negative.
func (c Claims) TimeLeft(now time.Time) int {
	return int(max(c.ExpiresAt-now.Unix(), 0))
}

// Expired reports whether exp is at or before now.
func (c Claims) Expired(now time.Time) bool {
	return now.Unix() >= c.ExpiresAt
}
