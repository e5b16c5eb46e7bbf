package token

import "errors"

var (
	ErrInvalidTokenFormat = errors.New("token: invalid token format")
	ErrSignatureInvalid   = errors.New("token: signature mismatch")
	ErrSigning            = errors.New("token: signing failed")
)
