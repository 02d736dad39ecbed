package timeout

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunReturnsResult(t *testing.T) {
	got, err := Run(context.Background(), time.Second, func(context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestRunPropagatesOperationError(t *testing.T) {
	opErr := errors.New("remote failed")
	_, err := Run(context.Background(), time.Second, func(context.Context) (int, error) {
		return 0, opErr
	})
	if !errors.Is(err, opErr) {
		t.Errorf("got %v, want %v", err, opErr)
	}
}

func TestRunTimesOut(t *testing.T) {
	started := make(chan struct{})
	_, err := Run(context.Background(), 10*time.Millisecond, func(context.Context) (int, error) {
		close(started)
		time.Sleep(time.Second)
		return 1, nil
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
	select {
	case <-started:
	default:
		t.Error("operation never started")
	}
}

func TestRunAbandonedOperationKeepsRunning(t *testing.T) {
	finished := make(chan struct{})
	_, err := Run(context.Background(), 10*time.Millisecond, func(context.Context) (int, error) {
		time.Sleep(50 * time.Millisecond)
		close(finished)
		return 1, nil
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}

	// The loser is abandoned, not cancelled: it still gets to finish its
	// side effects.
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Error("abandoned operation was never allowed to finish")
	}
}

func TestRunHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, time.Second, func(context.Context) (int, error) {
		time.Sleep(time.Second)
		return 1, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
