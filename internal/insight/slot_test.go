package insight

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitForStatus[T any](t *testing.T, slot *Slot[T], want Status) SlotView[T] {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		view := slot.Snapshot()
		if view.Status == want {
			return view
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("slot never reached status %q, last seen %q", want, slot.Snapshot().Status)
	return SlotView[T]{}
}

func TestSlotStartsIdle(t *testing.T) {
	slot := NewSlot[string]("failed", nil)
	view := slot.Snapshot()
	if view.Status != StatusIdle || view.Value != nil || view.Error != "" {
		t.Errorf("new slot should be idle and empty, got %+v", view)
	}
}

func TestSlotSecondStartWhilePendingIsNoOp(t *testing.T) {
	slot := NewSlot[string]("failed", nil)
	release := make(chan struct{})
	var calls int32

	op := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "done", nil
	}

	if !slot.Start(context.Background(), op) {
		t.Fatal("first start should be accepted")
	}
	if slot.Start(context.Background(), op) {
		t.Error("second start while pending should be a no-op")
	}

	close(release)
	view := waitForStatus(t, slot, StatusSuccess)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected exactly one underlying call, got %d", got)
	}
	if view.Value == nil || *view.Value != "done" {
		t.Errorf("expected value 'done', got %+v", view)
	}
}

func TestSlotFailureUsesFixedMessage(t *testing.T) {
	slot := NewSlot[string]("something went wrong", nil)

	slot.Start(context.Background(), func(ctx context.Context) (string, error) {
		return "", errors.New("connection refused: 10.0.0.7:443")
	})

	view := waitForStatus(t, slot, StatusFailed)
	if view.Error != "something went wrong" {
		t.Errorf("raw errors must not leak to the view, got %q", view.Error)
	}
	if view.Value != nil {
		t.Errorf("failed slot must not carry a value, got %v", *view.Value)
	}
}

func TestSlotResetDiscardsInFlightResult(t *testing.T) {
	slot := NewSlot[string]("failed", nil)
	release := make(chan struct{})

	slot.Start(context.Background(), func(ctx context.Context) (string, error) {
		<-release
		return "stale", nil
	})
	slot.Reset()
	close(release)

	// Give the stale completion a chance to (wrongly) commit.
	time.Sleep(50 * time.Millisecond)

	view := slot.Snapshot()
	if view.Status != StatusIdle {
		t.Errorf("reset slot should stay idle, got %q", view.Status)
	}
	if view.Value != nil {
		t.Errorf("stale result must be discarded, got %q", *view.Value)
	}
}

func TestSlotRestartAfterSuccess(t *testing.T) {
	slot := NewSlot[int]("failed", nil)

	slot.Start(context.Background(), func(ctx context.Context) (int, error) { return 1, nil })
	waitForStatus(t, slot, StatusSuccess)

	if !slot.Start(context.Background(), func(ctx context.Context) (int, error) { return 2, nil }) {
		t.Fatal("start after a terminal state should be accepted")
	}
	view := waitForStatus(t, slot, StatusSuccess)
	if view.Value == nil || *view.Value != 2 {
		t.Errorf("expected the second result, got %+v", view)
	}
}

func TestSlotNotifiesOnTransitions(t *testing.T) {
	var transitions int32
	slot := NewSlot[string]("failed", func() { atomic.AddInt32(&transitions, 1) })

	slot.Start(context.Background(), func(ctx context.Context) (string, error) { return "ok", nil })
	waitForStatus(t, slot, StatusSuccess)

	// Pending plus success.
	if got := atomic.LoadInt32(&transitions); got != 2 {
		t.Errorf("expected 2 notifications, got %d", got)
	}
}
