// Package lifecycle owns the single active Bio-Pass session.
//
// A Controller creates a session (fresh P-256 keypair, CSPRNG session id and
// nonce, signed token), writes an obfuscated copy of the claims to a
// store.Store slot, and then counts the session down once per tick:
//
//	idle ──Generate──▶ valid ──tick──▶ expiring ──tick──▶ expired
//	                     │                 │
//	                     └─────Destroy─────┴──────────────▶ expired
//
// Status is expiring while 0 < TimeLeft < warning threshold. Natural expiry
// keeps the last token and claims in the snapshot for display; Destroy clears
// them. Either way the keypair is destroyed, the timer stops and the store
// slot is removed before the snapshot says expired.
//
// State is published as immutable snapshots. Readers call State or Subscribe
// and never see a partially built session.
//
// # Concurrency
//
// One mutex serializes ticks, commits and Destroy. Key generation and signing
// run outside it. Every session start or end bumps an epoch counter; a
// Generate that loses a race with Destroy notices the epoch moved, destroys
// the keypair it just made and returns ErrSessionDestroyed. Timers carry
// their epoch too, so a late tick from an old session is ignored.
//
// # Persistence
//
// The slot value is base64(JSON(claims)). That is obfuscation, not
// encryption: the claims are public anyway (they are inside the token) and
// the private key is never written. Write failures do not fail the session;
// they are logged once per session and handed to the OnPersistenceError hook.
//
// Countdown is tick driven and not corrected if the wall clock is adjusted
// mid-session; iat and exp come from the injected clock at creation.
package lifecycle
