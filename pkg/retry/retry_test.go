package retry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errDup = errors.New("duplicate key")

func isDup(err error) bool { return errors.Is(err, errDup) }

func TestDo_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	err := Do(6, func() error { calls++; return nil }, isDup)

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(6, func() error {
		calls++
		if calls < 3 {
			return errDup
		}
		return nil
	}, isDup)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_Exhausted(t *testing.T) {
	calls := 0
	err := Do(6, func() error { calls++; return errDup }, isDup)

	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 6, calls)
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	fatal := errors.New("connection refused")
	calls := 0
	err := Do(6, func() error { calls++; return fatal }, isDup)

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}
