// Package retry provides the bounded-retry combinator used wherever a
// duplicate-key violation stands in for a lock (ticket-code allocation,
// ticket upserts). The bound keeps collision storms from looping forever.
package retry

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when every attempt failed with a retryable error.
var ErrExhausted = errors.New("retry attempts exhausted")

// Do runs fn up to attempts times. A non-retryable error stops immediately
// and is returned as-is; a retryable error on the final attempt is wrapped
// in ErrExhausted.
func Do(attempts int, fn func() error, retryable func(error) bool) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if retryable == nil || !retryable(err) {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrExhausted, attempts, err)
}
