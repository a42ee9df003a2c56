package waitable

import "time"

// sysMaxWaitObjects caps the size of one multi-object wait. Windows'
// MAXIMUM_WAIT_OBJECTS is 64; the portable backend mirrors it.
const sysMaxWaitObjects = 64

// waitOutcome is the composite outcome reported by the platform wait call.
type waitOutcome int

const (
	outcomeSignaled waitOutcome = iota // one object signaled; index is valid
	outcomeAll                         // all objects signaled together
	outcomeTimeout
)

// MaxNumWaitables returns the maximum number of waitables a single
// WaitForOne or WaitForAll call accepts. It is 64 on every platform,
// mirroring the Windows MAXIMUM_WAIT_OBJECTS limit.
func MaxNumWaitables() int {
	return sysMaxWaitObjects
}

// WaitForAll blocks until every waitable in waitables is observed signaled
// together, or timeout elapses, and returns Signaled or TimedOut
// accordingly. The wait succeeds only when all objects are signaled
// simultaneously: any auto-reset event or semaphore among them is consumed
// as part of that single step, and none is consumed on a timeout.
//
// A zero or negative timeout polls; durations beyond MaxWaitDuration
// saturate to it. An empty slice fails with ErrNoWaitables, a slice longer
// than MaxNumWaitables fails with ErrTooManyWaitables, and a slice naming
// the same object twice is invalid — all before blocking and without side
// effects. A one-element slice behaves exactly like calling Wait on that
// element.
func WaitForAll(waitables []Waitable, timeout time.Duration) (WaitResult, error) {
	res, _, err := waitMultiple(waitables, timeoutMillis(timeout), true)
	if err != nil {
		return TimedOut, err
	}
	if res == MultiTimedOut {
		return TimedOut, nil
	}
	return Signaled, nil
}

// WaitForOne blocks until at least one waitable in waitables is signaled, or
// timeout elapses. On OneSignaled the returned index is the position within
// waitables of a signaled object, which has been consumed exactly as if Wait
// had been called on it alone; when several are signaled at once the choice
// among them is unspecified. On MultiTimedOut the index is -1.
//
// Input length limits and timeout handling are as for WaitForAll.
func WaitForOne(waitables []Waitable, timeout time.Duration) (MultiWaitResult, int, error) {
	return waitMultiple(waitables, timeoutMillis(timeout), false)
}

func waitMultiple(waitables []Waitable, millis uint32, waitAll bool) (MultiWaitResult, int, error) {
	if len(waitables) == 0 {
		return MultiTimedOut, -1, ErrNoWaitables
	}
	if len(waitables) > sysMaxWaitObjects {
		return MultiTimedOut, -1, ErrTooManyWaitables
	}

	// Identities are collected in input order; that order is what the
	// reported index refers to.
	var buf [sysMaxWaitObjects]Handle
	handles := buf[:len(waitables)]
	for i, w := range waitables {
		handles[i] = w.Handle()
	}

	outcome, idx, err := sysWait(handles, millis, waitAll)
	if err != nil {
		return MultiTimedOut, -1, err
	}
	switch outcome {
	case outcomeAll:
		return AllSignaled, -1, nil
	case outcomeSignaled:
		return OneSignaled, idx, nil
	default:
		return MultiTimedOut, -1, nil
	}
}

// waitSingle issues a platform wait on one handle and maps the outcome onto
// the two-valued result.
func waitSingle(h Handle, millis uint32) (WaitResult, error) {
	var buf [1]Handle
	buf[0] = h
	outcome, _, err := sysWait(buf[:], millis, false)
	if err != nil {
		return TimedOut, err
	}
	if outcome == outcomeTimeout {
		return TimedOut, nil
	}
	return Signaled, nil
}
