package testutils

import (
	"context"
	"testing"
	"time"
)

var (
	ConnectTimeout = 10 * time.Second
	pollInterval   = 10 * time.Millisecond
)

// WithTimeout polls f until it returns an empty string, failing the test with the last
// reported reason once the timeout (ConnectTimeout by default) has passed.
func WithTimeout(t *testing.T, f func() string, timeout ...time.Duration) {
	t.Helper()

	d := ConnectTimeout
	if len(timeout) > 0 {
		d = timeout[0]
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	lastErr := ""
	for {
		select {
		case <-ctx.Done():
			t.Fatalf("did not reach expected state after %v: %s", d, lastErr)
		case <-time.After(pollInterval):
			lastErr = f()
			if lastErr == "" {
				return
			}
		}
	}
}
