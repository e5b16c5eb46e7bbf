// Package random supplies cryptographically secure random material for
// Bio-Pass sessions: raw bytes, session identifiers and nonces.
//
// Every value is drawn from crypto/rand (or an injected io.Reader in tests).
// There is no fallback to math/rand: when the secure reader fails or returns
// fewer bytes than requested, the call fails with ErrRandomnessUnavailable.
//
// # Usage
//
//	import "github.com/biopass/biopass/pkg/random"
//
//	src := random.NewSource(nil) // crypto/rand
//
//	id, err := src.SessionID()   // 24 bytes, base64url without padding
//	if err != nil {
//	    // no secure randomness, abort the operation
//	}
//
// Session identifiers and nonces only contain the URL-safe alphabet
// [A-Za-z0-9_-] so they can be embedded in URLs and QR payloads unescaped.
package random
