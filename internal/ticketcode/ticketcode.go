// Package ticketcode generates the admission codes printed on badges and
// encoded in QR payloads. Collision handling is the caller's job: codes are
// random draws from a large space, retried on unique-index violations.
package ticketcode

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenPrefix precedes alphanumeric codes so scanned tokens are
// distinguishable from free numeric input.
const TokenPrefix = "TICK-"

// Numeric returns a random all-digit code of the given length, suitable for
// human-readable visitor tickets. The first digit is never zero so the code
// survives numeric round-trips through loosely typed scan clients.
func Numeric(digits int) string {
	if digits < 1 {
		digits = 1
	}
	var b strings.Builder
	b.Grow(digits)
	for i := 0; i < digits; i++ {
		lo := int64(0)
		if i == 0 {
			lo = 1
		}
		n, err := rand.Int(rand.Reader, big.NewInt(10-lo))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		b.WriteByte(byte('0' + lo + n.Int64()))
	}
	return b.String()
}

// Alphanumeric returns a random code of length n over [A-Z0-9].
func Alphanumeric(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			panic(err)
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String()
}

// Token returns a prefixed alphanumeric ticket code, e.g. "TICK-AB12CD".
func Token() string {
	return TokenPrefix + Alphanumeric(6)
}

// AllDigits reports whether s is a non-empty run of ASCII digits.
func AllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
