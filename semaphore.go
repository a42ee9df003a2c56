package waitable

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Semaphore is a waitable counter in [0, maxCount] backed by one platform
// object. It is signaled whenever the count is above zero; each successful
// wait consumes exactly one count. Increment adds counts, releasing up to
// that many blocked waiters, and fails atomically when the result would
// exceed the maximum.
//
// Semaphores are safe for concurrent use by multiple goroutines. Which
// waiters an Increment releases when more are blocked than counts added is
// unspecified.
type Semaphore struct {
	hnd    Handle
	closed atomic.Bool
}

// NewSemaphore creates a semaphore with the given initial count and maximum
// count. It returns ErrInvalidCount unless 0 <= initCount <= maxCount and
// maxCount > 0. A non-empty name attaches to an existing semaphore of the
// same name if one exists (its current count and maximum are kept and both
// arguments are ignored); the empty string creates an anonymous semaphore.
func NewSemaphore(initCount, maxCount int, name string) (*Semaphore, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if maxCount <= 0 || initCount < 0 || initCount > maxCount {
		return nil, ErrInvalidCount
	}
	h, err := sysCreateSemaphore(initCount, maxCount, name)
	if err != nil {
		return nil, fmt.Errorf("waitable: create semaphore: %w", err)
	}
	return &Semaphore{hnd: h}, nil
}

// Increment adds count to the semaphore's counter, releasing up to count
// blocked waiters, and returns the counter value immediately before the
// increment. count must be at least 1.
//
// If the increment would push the counter above the semaphore's maximum, it
// fails with an error wrapping ErrSemaphoreOverflow and the counter is left
// entirely unchanged — there is no partial increment.
func (s *Semaphore) Increment(count int) (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	if count < 1 {
		return 0, ErrInvalidCount
	}
	prev, err := sysReleaseSemaphore(s.hnd, count)
	if err != nil {
		return 0, fmt.Errorf("waitable: increment semaphore: %w", err)
	}
	return prev, nil
}

// IncrementOne adds a single count, releasing at most one blocked waiter.
// It is shorthand for Increment(1).
func (s *Semaphore) IncrementOne() (int, error) {
	return s.Increment(1)
}

// Wait implements Waitable. On Signaled the count has been decremented by
// exactly one as part of the same atomic step.
func (s *Semaphore) Wait(timeout time.Duration) (WaitResult, error) {
	if s.closed.Load() {
		return TimedOut, ErrClosed
	}
	return waitSingle(s.hnd, timeoutMillis(timeout))
}

// WaitIndefinitely implements Waitable.
func (s *Semaphore) WaitIndefinitely() error {
	if s.closed.Load() {
		return ErrClosed
	}
	_, err := waitSingle(s.hnd, infiniteMillis)
	return err
}

// Handle implements Waitable.
func (s *Semaphore) Handle() Handle {
	return s.hnd
}

// Close releases the semaphore's platform handle. The underlying object is
// destroyed once every handle attached to it (via its name) is closed.
// Close is idempotent; other methods return ErrClosed afterwards.
func (s *Semaphore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return sysClose(s.hnd)
}
