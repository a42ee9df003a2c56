package waitable

import (
	"errors"
	"strings"
)

// ErrInvalidName is returned when an object name cannot be represented in the
// platform's native name encoding (for example, it contains a NUL byte).
// The name is validated before any platform call is made.
var ErrInvalidName = errors.New("waitable: invalid object name")

// ErrInvalidCount is returned by NewSemaphore when maxCount is not positive,
// initCount is negative, or initCount exceeds maxCount.
var ErrInvalidCount = errors.New("waitable: semaphore count out of range")

// ErrSemaphoreOverflow is returned by Increment when adding the requested
// count would push the semaphore above its maximum. The counter is left
// unchanged. Callers coordinating through a bounded semaphore are expected to
// treat this as a normal "already at capacity" outcome.
var ErrSemaphoreOverflow = errors.New("waitable: semaphore count would exceed its maximum")

// ErrTooManyWaitables is returned by WaitForOne and WaitForAll when the input
// slice is longer than MaxNumWaitables. The call fails before blocking and
// has no side effect on any of the supplied waitables.
var ErrTooManyWaitables = errors.New("waitable: too many waitables")

// ErrDuplicateWaitable is returned by WaitForOne and WaitForAll when the same
// object appears more than once in the input slice.
var ErrDuplicateWaitable = errors.New("waitable: duplicate waitable in wait set")

// ErrNoWaitables is returned by WaitForOne and WaitForAll for an empty input
// slice. Waiting on nothing is rejected rather than defined as an immediate
// success or timeout, matching the platform wait call.
var ErrNoWaitables = errors.New("waitable: no waitables supplied")

// ErrClosed is returned when an operation is attempted through a handle that
// has already been closed.
var ErrClosed = errors.New("waitable: object is closed")

// ErrAbandoned is returned from a wait when the object was released out from
// under the waiter (the last handle to it was closed while the wait was in
// progress).
var ErrAbandoned = errors.New("waitable: object abandoned while waiting")

// errKindMismatch reports a named attach to an existing object of a different
// kind. Surfaced wrapped in the constructor's creation error.
var errKindMismatch = errors.New("name already in use by a different object kind")

// checkName rejects names the platform name encoding cannot carry. Performed
// up front so no platform call is made with a malformed name.
func checkName(name string) error {
	if strings.IndexByte(name, 0) >= 0 {
		return ErrInvalidName
	}
	return nil
}
