package random

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

const (
	// SessionIDSize is the number of random bytes behind a session id (192 bits).
	SessionIDSize = 24
	// NonceSize is the number of random bytes behind a nonce (128 bits).
	NonceSize = 16
)

// Source reads fixed-length byte sequences from a secure reader. It holds no
// state besides the reader and is safe for concurrent use when the reader is.
type Source struct {
	reader io.Reader
}

// NewSource returns a Source backed by r. A nil reader selects crypto/rand.
func NewSource(r io.Reader) *Source {
	if r == nil {
		r = rand.Reader
	}
	return &Source{reader: r}
}

// Bytes returns n bytes from the secure reader.
func (s *Source) Bytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(s.reader, b); err != nil {
		return nil, errors.Join(ErrRandomnessUnavailable, err)
	}
	return b, nil
}

// SessionID returns a URL-safe identifier with 192 bits of entropy.
func (s *Source) SessionID() (string, error) {
	return s.encoded(SessionIDSize)
}

// Nonce returns a single-use URL-safe value with 128 bits of entropy.
func (s *Source) Nonce() (string, error) {
	return s.encoded(NonceSize)
}

func (s *Source) encoded(n int) (string, error) {
	b, err := s.Bytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Bytes reads n bytes from crypto/rand.
func Bytes(n int) ([]byte, error) {
	return NewSource(nil).Bytes(n)
}
