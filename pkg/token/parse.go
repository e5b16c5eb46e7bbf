package token

import (
	"crypto/ecdsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Verify reports whether tok is well formed and signed by the holder of key.
func Verify(tok string, key *ecdsa.PublicKey) bool {
	_, err := Parse(tok, key)
	return err == nil
}

// Parse verifies tok against key and returns its claims.
func Parse(tok string, key *ecdsa.PublicKey) (Claims, error) {
	var claims Claims

	data, sig, err := split(tok)
	if err != nil {
		return claims, err
	}

	if key == nil || key.Curve == nil || key.X == nil || key.Y == nil {
		return claims, ErrSignatureInvalid
	}

	if err := jwt.SigningMethodES256.Verify(string(data), sig, key); err != nil {
		return claims, ErrSignatureInvalid
	}

	if err := json.Unmarshal(data, &claims); err != nil {
		return Claims{}, errors.Join(ErrInvalidTokenFormat, err)
	}

	return claims, nil
}

// Decode returns the claims embedded in tok without checking the signature.
// Only use it for display or diagnostics.
func Decode(tok string) (Claims, error) {
	var claims Claims

	data, _, err := split(tok)
	if err != nil {
		return claims, err
	}

	if err := json.Unmarshal(data, &claims); err != nil {
		return Claims{}, errors.Join(ErrInvalidTokenFormat, err)
	}

	return claims, nil
}

func split(tok string) (data, sig []byte, err error) {
	parts := strings.Split(tok, separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, nil, ErrInvalidTokenFormat
	}

	data, err = base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, errors.Join(ErrInvalidTokenFormat, err)
	}

	sig, err = base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, errors.Join(ErrInvalidTokenFormat, err)
	}

	return data, sig, nil
}
