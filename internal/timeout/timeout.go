// Package timeout races an operation against a wall-clock budget.
//
// The losing operation is not cancelled: it keeps running in its own
// goroutine and its eventual result is discarded. Callers must only hand in
// operations whose side effects are externally durable and idempotent (a
// downloaded file either exists or it does not), so abandoning them cannot
// leave inconsistent state.
package timeout

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when the budget elapses before the operation settles.
var ErrTimeout = errors.New("operation exceeded its time budget")

// Run starts op and a timer concurrently and returns whichever settles first.
// The context is passed through to op untouched; a cancelled context wins the
// race like the timer does.
func Run[T any](ctx context.Context, budget time.Duration, op func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}

	// Buffered so the abandoned operation can settle without a receiver.
	done := make(chan outcome, 1)
	go func() {
		v, err := op(ctx)
		done <- outcome{val: v, err: err}
	}()

	timer := time.NewTimer(budget)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		return out.val, out.err
	case <-timer.C:
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
