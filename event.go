package waitable

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Event is a waitable boolean signal backed by one platform object.
//
// An auto-reset event releases at most one waiter per Set call and returns to
// the unsignaled state atomically as part of releasing it; a Set with no
// waiter present is consumed by exactly one future Wait. A manual-reset event
// stays signaled until Reset is called and releases every current and future
// waiter in the meantime.
//
// Events are safe for concurrent use by multiple goroutines. Which waiter an
// auto-reset Set releases when several are blocked is unspecified.
type Event struct {
	hnd    Handle
	manual bool
	closed atomic.Bool
}

// NewAutoEvent creates an auto-reset event. signaled sets the initial state.
// A non-empty name attaches to an existing event of the same name if one
// exists (its current state is kept and signaled is ignored); the empty
// string creates an anonymous event.
func NewAutoEvent(signaled bool, name string) (*Event, error) {
	return newEvent(false, signaled, name)
}

// NewManualEvent creates a manual-reset event. signaled sets the initial
// state. Naming behaves as for NewAutoEvent.
func NewManualEvent(signaled bool, name string) (*Event, error) {
	return newEvent(true, signaled, name)
}

func newEvent(manual, signaled bool, name string) (*Event, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	h, err := sysCreateEvent(manual, signaled, name)
	if err != nil {
		return nil, fmt.Errorf("waitable: create event: %w", err)
	}
	return &Event{hnd: h, manual: manual}, nil
}

// Set transitions the event to the signaled state.
//
// Auto-reset: at most one blocked waiter is released and the event returns
// to unsignaled as part of releasing it. With no waiter blocked, the signaled
// state persists until exactly one future wait consumes it — a single Set
// never satisfies more than one wait.
//
// Manual-reset: the event stays signaled until Reset is called.
func (e *Event) Set() error {
	if e.closed.Load() {
		return ErrClosed
	}
	if err := sysSetEvent(e.hnd); err != nil {
		return fmt.Errorf("waitable: set event: %w", err)
	}
	return nil
}

// Reset transitions the event to the unsignaled state. Valid for both reset
// disciplines; on an auto-reset event it races benignly with any in-flight
// auto-consumption.
func (e *Event) Reset() error {
	if e.closed.Load() {
		return ErrClosed
	}
	if err := sysResetEvent(e.hnd); err != nil {
		return fmt.Errorf("waitable: reset event: %w", err)
	}
	return nil
}

// Wait implements Waitable. On Signaled, an auto-reset event has been
// consumed (reset); a manual-reset event is left untouched.
func (e *Event) Wait(timeout time.Duration) (WaitResult, error) {
	if e.closed.Load() {
		return TimedOut, ErrClosed
	}
	return waitSingle(e.hnd, timeoutMillis(timeout))
}

// WaitIndefinitely implements Waitable.
func (e *Event) WaitIndefinitely() error {
	if e.closed.Load() {
		return ErrClosed
	}
	_, err := waitSingle(e.hnd, infiniteMillis)
	return err
}

// Handle implements Waitable.
func (e *Event) Handle() Handle {
	return e.hnd
}

// Close releases the event's platform handle. The underlying object is
// destroyed once every handle attached to it (via its name) is closed.
// Close is idempotent; other methods return ErrClosed afterwards.
func (e *Event) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	return sysClose(e.hnd)
}
