// Package waitable provides OS-style waitable synchronization objects —
// manual- and auto-reset events and counting semaphores — plus combinators
// that block the calling goroutine until one or all of a heterogeneous set of
// objects becomes signaled.
//
// The package mirrors the semantics of the Windows synchronization API
// (CreateEvent, CreateSemaphore, WaitForMultipleObjects) and uses the real
// kernel objects on Windows. On other platforms the same semantics are
// provided by a portable in-process implementation, so code written against
// this package behaves identically everywhere.
//
// # Events
//
// An Event is a boolean signal with one of two reset disciplines, fixed at
// construction:
//
//	// Manual-reset: stays signaled until Reset is called. Every waiter
//	// observes it signaled.
//	gate, err := waitable.NewManualEvent(false, "")
//
//	// Auto-reset: releases at most one waiter per Set, returning to the
//	// unsignaled state as part of releasing it.
//	work, err := waitable.NewAutoEvent(false, "")
//
//	gate.Set()   // open the gate for everyone
//	work.Set()   // hand exactly one waiter a unit of work
//
// # Semaphores
//
// A Semaphore is a counter in [0, maxCount]. A successful wait consumes one
// count; Increment adds counts and fails with ErrSemaphoreOverflow if the
// result would exceed the maximum, leaving the counter untouched:
//
//	sem, err := waitable.NewSemaphore(0, 8, "")
//
//	prev, err := sem.Increment(3) // release up to three waiters
//	_, err = sem.IncrementOne()
//
// # Waiting
//
// Both primitives satisfy the Waitable interface. Wait blocks until the
// object is signaled or the timeout elapses; a zero timeout polls without
// blocking. Timeout is reported as a result, not an error:
//
//	res, err := sem.Wait(2 * time.Second)
//	if err != nil {
//	    // the wait itself failed at the platform level
//	}
//	if res == waitable.TimedOut {
//	    // not ready yet
//	}
//
// Collections of waitables — events and semaphores mixed freely — are waited
// on with WaitForOne and WaitForAll, bounded by MaxNumWaitables:
//
//	res, idx, err := waitable.WaitForOne([]waitable.Waitable{gate, sem}, time.Second)
//	if res == waitable.OneSignaled {
//	    // waitables[idx] caused the wake and, if consumable, was consumed
//	}
//
// # Named Objects
//
// A non-empty name attaches to an existing object of the same kind instead of
// creating a new one, letting independent components coordinate through a
// shared primitive. The empty string means "no name".
//
// # Lifecycle
//
// Every object holds one platform handle and must be released exactly once
// with Close. Close is idempotent per handle; other operations on a closed
// handle return ErrClosed. Passing a Waitable into WaitForOne/WaitForAll
// never transfers ownership — the combinator borrows each object's identity
// for the duration of the call and the caller must keep all of them open
// until it returns.
//
// # Platform Support
//
// Windows uses kernel event and semaphore objects via golang.org/x/sys.
// All other platforms use the portable dispatcher in this package. Wait
// timeouts are limited to the 32-bit millisecond range of the underlying
// wait primitives (about 49.7 days); longer durations saturate to
// MaxWaitDuration.
package waitable
