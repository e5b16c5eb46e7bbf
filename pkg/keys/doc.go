// Package keys generates the per-session ECDSA signing keypair.
//
// Each call to Manager.Generate yields a fresh P-256 keypair used with SHA-256.
// The private half lives in memory only: Keypair has no serialization method,
// does not implement encoding interfaces, and is destroyed explicitly with
// Destroy, which zeroes the private scalar (best effort; the Go runtime may
// keep copies it made internally) and drops the reference.
//
// Key generation errors are wrapped in ErrKeyGeneration and never retried by
// this package; the caller decides.
//
// Fingerprint returns a short BLAKE3 digest of the public point. It identifies
// a keypair in logs and on screen without revealing anything secret.
package keys
