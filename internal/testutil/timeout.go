package testutil

import (
	"context"
	"testing"
	"time"
)

const (
	// DefaultLoopTimeout bounds a frame loop test. Loops under test read
	// finite in-memory sources, so anything longer is a hang.
	DefaultLoopTimeout = 10 * time.Second

	// DefaultTestBuffer is subtracted from the test deadline so cleanup can
	// still run.
	DefaultTestBuffer = 2 * time.Second
)

// ContextWithTestDeadline creates a context that ends before the test's
// deadline, or after fallback when the test has none.
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-DefaultTestBuffer)
		if time.Until(adjusted) > 0 && time.Until(adjusted) < fallback {
			return context.WithDeadline(context.Background(), adjusted)
		}
	}
	return context.WithTimeout(context.Background(), fallback)
}

// LoopContext returns a context suitable for running a frame loop in a test.
func LoopContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultLoopTimeout)
}
