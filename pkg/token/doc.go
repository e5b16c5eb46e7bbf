// Package token builds and checks Bio-Pass tokens: compact, ECDSA-signed
// strings carrying a session's Claims.
//
// Token format: base64url(claims).base64url(signature)
//
// The claims part is the UTF-8 JSON encoding of Claims with a fixed field
// order (sessionId, iat, exp, nonce). The signature is ES256 (ECDSA P-256
// over SHA-256 of the claims JSON) in the fixed 64-byte r||s form, so every
// token for a given claims size has the same length. Both parts use unpadded
// URL-safe base64 and the token fits in a QR payload without escaping.
//
// ECDSA signatures are randomized: signing identical claims twice yields two
// different strings, both of which verify.
//
// # Usage
//
//	import "github.com/biopass/biopass/pkg/token"
//
//	claims := token.NewClaims(sessionID, nonce, time.Now(), 120*time.Second)
//
//	tok, err := token.Sign(claims, privateKey)
//	if err != nil {
//	    // ErrSigning: no token was produced
//	}
//
//	if !token.Verify(tok, publicKey) {
//	    // tampered, malformed or signed by another key
//	}
//
// Parse returns the verified Claims, or ErrInvalidTokenFormat for malformed
// input and ErrSignatureInvalid for a signature mismatch. Verify never returns
// an error and never panics: anything that is not a valid token is false.
//
// Expiry is not enforced here. Claims.Expired and Claims.TimeLeft let callers
// compare exp against their own clock.
package token
