package token_test

import (
	"testing"

	"github.com/biopass/biopass/pkg/token"
)

func BenchmarkSign(b *testing.B) {
	priv := newKey(b)
	claims := testClaims()

	for b.Loop() {
		if _, err := token.Sign(claims, priv); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	priv := newKey(b)

	tok, err := token.Sign(testClaims(), priv)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if !token.Verify(tok, &priv.PublicKey) {
			b.Fatal("verify failed")
		}
	}
}
