package keys

import "errors"

var (
	ErrKeyGeneration = errors.New("keys: keypair generation failed")
	ErrKeyDestroyed  = errors.New("keys: keypair destroyed")
)
