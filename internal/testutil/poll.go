package testutil

import (
	"testing"
	"time"
)

// Eventually calls cond every few milliseconds until it returns true or
// timeout elapses. It reports whether cond succeeded.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
}
