package token

import (
	"crypto/ecdsa"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// separator joins the claims and signature parts.
const separator = "."

// Sign serializes claims, signs them with key and returns the encoded token.
// On any failure it returns ErrSigning and an empty string.
func Sign(claims Claims, key *ecdsa.PrivateKey) (string, error) {
	if key == nil || key.D == nil || key.D.Sign() == 0 {
		return "", errors.Join(ErrSigning, jwt.ErrInvalidKey)
	}

	data, err := json.Marshal(claims)
	if err != nil {
		return "", errors.Join(ErrSigning, err)
	}

	sig, err := jwt.SigningMethodES256.Sign(string(data), key)
	if err != nil {
		return "", errors.Join(ErrSigning, err)
	}

	return base64.RawURLEncoding.EncodeToString(data) + separator + base64.RawURLEncoding.EncodeToString(sig), nil
}
