package ticketcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumeric(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := Numeric(6)
		assert.Len(t, code, 6)
		assert.True(t, AllDigits(code), "code %q", code)
		assert.NotEqual(t, byte('0'), code[0], "leading zero in %q", code)
	}
}

func TestToken(t *testing.T) {
	code := Token()
	assert.True(t, strings.HasPrefix(code, TokenPrefix))
	assert.Len(t, code, len(TokenPrefix)+6)
}

func TestAllDigits(t *testing.T) {
	assert.True(t, AllDigits("123456"))
	assert.False(t, AllDigits(""))
	assert.False(t, AllDigits("12A456"))
	assert.False(t, AllDigits("TICK-123"))
}

func TestCodesAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := Token()
		assert.False(t, seen[code], "duplicate code %q", code)
		seen[code] = true
	}
}
