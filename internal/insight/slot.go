// Package insight manages per-customer asynchronous insight workflows. Each
// customer session owns three slots (interaction history, analysis,
// recommendation) with independent lifecycles and at-most-one in-flight
// request per slot.
package insight

import (
	"context"
	"sync"
)

// Status is the lifecycle state of a slot
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// SlotView is a point-in-time copy of a slot's state. Value is non-nil only
// on success; Error is non-empty only on failure.
type SlotView[T any] struct {
	Status Status `json:"status"`
	Value  *T     `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Slot is a state container enforcing at-most-one in-flight asynchronous
// operation. Completions are stamped with the generation they were started
// under; a completion whose generation no longer matches is discarded, which
// is what makes resetting safe while a request is in flight.
type Slot[T any] struct {
	mu         sync.Mutex
	status     Status
	value      *T
	errMsg     string
	failureMsg string
	generation uint64
	onChange   func()
}

// NewSlot creates an idle slot. failureMsg is the fixed user-facing text
// reported on any operation failure; onChange fires after every committed
// state transition and may be nil.
func NewSlot[T any](failureMsg string, onChange func()) *Slot[T] {
	return &Slot[T]{
		status:     StatusIdle,
		failureMsg: failureMsg,
		onChange:   onChange,
	}
}

// Start launches op unless a request is already pending, in which case it is
// a no-op and returns false. The operation runs on its own goroutine; its
// result is committed only if the slot has not been reset in the meantime.
func (s *Slot[T]) Start(ctx context.Context, op func(context.Context) (T, error)) bool {
	s.mu.Lock()
	if s.status == StatusPending {
		s.mu.Unlock()
		return false
	}
	s.status = StatusPending
	s.value = nil
	s.errMsg = ""
	s.generation++
	gen := s.generation
	s.mu.Unlock()
	s.notify()

	go func() {
		result, err := op(ctx)

		s.mu.Lock()
		if s.generation != gen {
			// The subject changed while this request was in flight.
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.status = StatusFailed
			s.errMsg = s.failureMsg
			s.value = nil
		} else {
			s.status = StatusSuccess
			s.value = &result
			s.errMsg = ""
		}
		s.mu.Unlock()
		s.notify()
	}()

	return true
}

// Reset returns the slot to idle and invalidates any in-flight request
func (s *Slot[T]) Reset() {
	s.mu.Lock()
	s.generation++
	s.status = StatusIdle
	s.value = nil
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns a copy of the slot's current state
func (s *Slot[T]) Snapshot() SlotView[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SlotView[T]{Status: s.status, Error: s.errMsg}
	if s.value != nil {
		copied := *s.value
		view.Value = &copied
	}
	return view
}

func (s *Slot[T]) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
