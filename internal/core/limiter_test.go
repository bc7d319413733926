package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLimiterAcquireRelease(t *testing.T) {
	l := NewImportLimiter(2, 50*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx, "farmers_t"); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := l.Acquire(ctx, "assets"); err != nil {
		t.Fatalf("second acquire: %v", err)
	}

	if got := l.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount = %d, want 2", got)
	}
	if got := l.Available(); got != 0 {
		t.Errorf("Available = %d, want 0", got)
	}

	// Third table has no free global slot
	if err := l.Acquire(ctx, "crop_history"); !errors.Is(err, ErrTooManyImports) {
		t.Errorf("expected ErrTooManyImports, got %v", err)
	}

	l.Release("farmers_t")
	if err := l.Acquire(ctx, "crop_history"); err != nil {
		t.Errorf("acquire after release: %v", err)
	}

	l.Release("assets")
	l.Release("crop_history")
}

func TestLimiterSerializesSameTable(t *testing.T) {
	l := NewImportLimiter(4, 50*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx, "farmers_t"); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	// A second import into the same table must wait, then time out
	if err := l.Acquire(ctx, "farmers_t"); !errors.Is(err, ErrTooManyImports) {
		t.Errorf("expected ErrTooManyImports for same table, got %v", err)
	}

	// The timed-out attempt must have returned its global slot
	if got := l.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}

	l.Release("farmers_t")
	if err := l.Acquire(ctx, "farmers_t"); err != nil {
		t.Errorf("acquire after release: %v", err)
	}
	l.Release("farmers_t")
}

func TestLimiterContextCancellation(t *testing.T) {
	l := NewImportLimiter(1, time.Minute)
	ctx := context.Background()

	if err := l.Acquire(ctx, "farmers_t"); err != nil {
		t.Fatal(err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := l.Acquire(cancelled, "assets"); err == nil {
		t.Error("expected error from cancelled context")
		l.Release("assets")
	}

	l.Release("farmers_t")
}

func TestLimiterWaitForDrain(t *testing.T) {
	l := NewImportLimiter(2, 50*time.Millisecond)
	ctx := context.Background()

	if err := l.WaitForDrain(ctx); err != nil {
		t.Errorf("drain with no imports: %v", err)
	}

	if err := l.Acquire(ctx, "farmers_t"); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- l.WaitForDrain(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	l.Release("farmers_t")

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("drain: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("WaitForDrain did not return after release")
	}
}

func TestLimiterStatus(t *testing.T) {
	l := NewImportLimiter(3, 50*time.Millisecond)

	if err := l.Acquire(context.Background(), "farmers_t"); err != nil {
		t.Fatal(err)
	}
	defer l.Release("farmers_t")

	st := l.Status()
	if st.Active != 1 || st.Available != 2 || st.MaxConcurrent != 3 {
		t.Errorf("Status = %+v, want {1 2 3}", st)
	}
}
