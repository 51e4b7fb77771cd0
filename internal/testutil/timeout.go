package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTestBuffer is kept free before the test deadline for cleanup.
const DefaultTestBuffer = 2 * time.Second

// ContextWithTestDeadline returns a context that ends shortly before the
// test's own deadline, or after fallback when the test has none.
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-DefaultTestBuffer)
		if adjusted.Before(time.Now().Add(fallback)) && time.Until(adjusted) > 0 {
			return context.WithDeadline(context.Background(), adjusted)
		}
	}
	return context.WithTimeout(context.Background(), fallback)
}
