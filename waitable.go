package waitable

import "time"

// WaitResult is the outcome of waiting on a single waitable, or on multiple
// waitables when all of them must be signaled.
type WaitResult int

const (
	// Signaled means the wait completed because the signal condition held:
	// the waitable was signaled, or all waitables were signaled.
	Signaled WaitResult = iota

	// TimedOut means the timeout elapsed before the signal condition held.
	TimedOut
)

// String returns "signaled" or "timed out".
func (r WaitResult) String() string {
	switch r {
	case Signaled:
		return "signaled"
	case TimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// MultiWaitResult is the outcome of waiting on multiple waitables when any
// one of them suffices.
type MultiWaitResult int

const (
	// OneSignaled means at least one waitable was signaled. The index of a
	// signaled waitable is returned alongside the result.
	OneSignaled MultiWaitResult = iota

	// AllSignaled means every waitable was signaled together. WaitForOne
	// never returns it; it is produced on the wait-for-all path, which
	// collapses it to Signaled before returning.
	AllSignaled

	// MultiTimedOut means the timeout elapsed before any waitable was
	// signaled.
	MultiTimedOut
)

// String returns "one signaled", "all signaled" or "timed out".
func (r MultiWaitResult) String() string {
	switch r {
	case OneSignaled:
		return "one signaled"
	case AllSignaled:
		return "all signaled"
	case MultiTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Waitable is the capability shared by every primitive in this package that
// a goroutine can block on. Event and Semaphore implement it; WaitForOne and
// WaitForAll accept any mix of implementations.
type Waitable interface {
	// Wait blocks until the object's signal condition holds or timeout
	// elapses, whichever comes first. A zero or negative timeout polls the
	// current state without blocking; durations beyond MaxWaitDuration
	// saturate to it.
	//
	// When the result is Signaled, an auto-reset event has been reset and a
	// semaphore's count decremented by one as part of the same atomic step.
	// Manual-reset events are not mutated by waiting.
	Wait(timeout time.Duration) (WaitResult, error)

	// WaitIndefinitely blocks until the object is signaled, with the same
	// consumption side effect as Wait. There is no way to cancel the wait
	// other than signaling the object.
	WaitIndefinitely() error

	// Handle returns the object's stable identity used by WaitForOne and
	// WaitForAll. It carries no ownership: the holder must keep the object
	// open for as long as the handle is in use.
	Handle() Handle
}
