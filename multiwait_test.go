package waitable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustManual(t *testing.T, signaled bool) *Event {
	t.Helper()
	e, err := NewManualEvent(signaled, "")
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func mustAuto(t *testing.T, signaled bool) *Event {
	t.Helper()
	e, err := NewAutoEvent(signaled, "")
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func mustSemaphore(t *testing.T, initCount, maxCount int) *Semaphore {
	t.Helper()
	s, err := NewSemaphore(initCount, maxCount, "")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMaxNumWaitables(t *testing.T) {
	require.Equal(t, 64, MaxNumWaitables())
}

func TestWaitForOneBothSignaled(t *testing.T) {
	e0 := mustManual(t, true)
	e1 := mustManual(t, true)
	w := []Waitable{e0, e1}

	res, idx, err := WaitForOne(w, longTimeout)
	require.NoError(t, err)
	require.Equal(t, OneSignaled, res)
	require.Contains(t, []int{0, 1}, idx)

	require.NoError(t, e0.Reset())

	res, idx, err = WaitForOne(w, longTimeout)
	require.NoError(t, err)
	require.Equal(t, OneSignaled, res)
	require.Equal(t, 1, idx)

	require.NoError(t, e1.Reset())

	res, idx, err = WaitForOne(w, shortTimeout)
	require.NoError(t, err)
	require.Equal(t, MultiTimedOut, res)
	require.Equal(t, -1, idx)
}

func TestWaitForAllNeedsEveryMember(t *testing.T) {
	e0 := mustManual(t, true)
	e1 := mustManual(t, false)
	w := []Waitable{e0, e1}

	res, err := WaitForAll(w, shortTimeout)
	require.NoError(t, err)
	require.Equal(t, TimedOut, res)

	require.NoError(t, e1.Set())

	res, err = WaitForAll(w, longTimeout)
	require.NoError(t, err)
	require.Equal(t, Signaled, res)
}

// A timed-out wait-for-all must not have consumed the members that were
// signaled.
func TestWaitForAllTimeoutLeavesStateUntouched(t *testing.T) {
	auto := mustAuto(t, true)
	sem := mustSemaphore(t, 1, 1)
	blocker := mustManual(t, false)

	res, err := WaitForAll([]Waitable{auto, sem, blocker}, shortTimeout)
	require.NoError(t, err)
	require.Equal(t, TimedOut, res)

	res, err = auto.Wait(0)
	require.NoError(t, err)
	require.Equal(t, Signaled, res)

	res, err = sem.Wait(0)
	require.NoError(t, err)
	require.Equal(t, Signaled, res)
}

// A successful wait-for-all consumes every consumable member in one step.
func TestWaitForAllConsumesEveryMember(t *testing.T) {
	auto := mustAuto(t, true)
	sem := mustSemaphore(t, 1, 1)
	manual := mustManual(t, true)

	res, err := WaitForAll([]Waitable{auto, sem, manual}, longTimeout)
	require.NoError(t, err)
	require.Equal(t, Signaled, res)

	res, err = auto.Wait(0)
	require.NoError(t, err)
	require.Equal(t, TimedOut, res)

	res, err = sem.Wait(0)
	require.NoError(t, err)
	require.Equal(t, TimedOut, res)

	// The manual event is not consumed by waiting.
	res, err = manual.Wait(0)
	require.NoError(t, err)
	require.Equal(t, Signaled, res)
}

// Wait-for-one consumes the reported waitable and nothing else.
func TestWaitForOneConsumesOnlyReported(t *testing.T) {
	auto := mustAuto(t, true)
	sem := mustSemaphore(t, 1, 1)
	w := []Waitable{auto, sem}

	res, idx, err := WaitForOne(w, longTimeout)
	require.NoError(t, err)
	require.Equal(t, OneSignaled, res)

	other := w[1-idx]
	consumed := w[idx]

	r, err := other.Wait(0)
	require.NoError(t, err)
	require.Equal(t, Signaled, r)

	r, err = consumed.Wait(0)
	require.NoError(t, err)
	require.Equal(t, TimedOut, r)
}

func TestWaitForOneBlocksUntilSignal(t *testing.T) {
	e0 := mustAuto(t, false)
	e1 := mustAuto(t, false)

	const delay = 200 * time.Millisecond
	go func() {
		time.Sleep(delay)
		e1.Set()
	}()

	start := time.Now()
	res, idx, err := WaitForOne([]Waitable{e0, e1}, longTimeout)
	require.NoError(t, err)
	require.Equal(t, OneSignaled, res)
	require.Equal(t, 1, idx)
	require.GreaterOrEqual(t, time.Since(start), delay-50*time.Millisecond)
}

func TestWaitForAllBlocksUntilLastSignal(t *testing.T) {
	e0 := mustAuto(t, false)
	e1 := mustAuto(t, false)

	const last = 300 * time.Millisecond
	go func() {
		time.Sleep(100 * time.Millisecond)
		e0.Set()
	}()
	go func() {
		time.Sleep(last)
		e1.Set()
	}()

	start := time.Now()
	res, err := WaitForAll([]Waitable{e0, e1}, longTimeout)
	require.NoError(t, err)
	require.Equal(t, Signaled, res)
	require.GreaterOrEqual(t, time.Since(start), last-50*time.Millisecond)

	// Both were consumed by the combined wait.
	r, err := e0.Wait(0)
	require.NoError(t, err)
	require.Equal(t, TimedOut, r)
	r, err = e1.Wait(0)
	require.NoError(t, err)
	require.Equal(t, TimedOut, r)
}

func TestMultiWaitSingleElement(t *testing.T) {
	auto := mustAuto(t, true)

	// Same behavior as calling Wait directly, consumption included.
	res, err := WaitForAll([]Waitable{auto}, longTimeout)
	require.NoError(t, err)
	require.Equal(t, Signaled, res)

	r, err := auto.Wait(0)
	require.NoError(t, err)
	require.Equal(t, TimedOut, r)

	require.NoError(t, auto.Set())

	mres, idx, err := WaitForOne([]Waitable{auto}, longTimeout)
	require.NoError(t, err)
	require.Equal(t, OneSignaled, mres)
	require.Equal(t, 0, idx)
}

func TestMultiWaitEmptyInput(t *testing.T) {
	_, err := WaitForAll(nil, shortTimeout)
	require.ErrorIs(t, err, ErrNoWaitables)

	_, _, err = WaitForOne([]Waitable{}, shortTimeout)
	require.ErrorIs(t, err, ErrNoWaitables)
}

func TestMultiWaitCapacityExceeded(t *testing.T) {
	n := MaxNumWaitables() + 1
	w := make([]Waitable, n)
	for i := range w {
		w[i] = mustManual(t, true)
	}

	start := time.Now()
	_, err := WaitForAll(w, longTimeout)
	require.ErrorIs(t, err, ErrTooManyWaitables)

	_, _, err = WaitForOne(w, longTimeout)
	require.ErrorIs(t, err, ErrTooManyWaitables)

	// Rejected before blocking.
	require.Less(t, time.Since(start), time.Second)

	// And with no side effect on any member.
	for _, m := range w {
		res, err := m.Wait(0)
		require.NoError(t, err)
		require.Equal(t, Signaled, res)
	}
}

func TestMultiWaitExactlyAtCapacity(t *testing.T) {
	w := make([]Waitable, MaxNumWaitables())
	for i := range w {
		w[i] = mustManual(t, true)
	}

	res, err := WaitForAll(w, longTimeout)
	require.NoError(t, err)
	require.Equal(t, Signaled, res)
}

func TestMultiWaitDuplicateInput(t *testing.T) {
	e := mustManual(t, true)

	_, _, err := WaitForOne([]Waitable{e, e}, shortTimeout)
	require.Error(t, err)

	_, err = WaitForAll([]Waitable{e, e}, shortTimeout)
	require.Error(t, err)
}

func TestMultiWaitClosedMember(t *testing.T) {
	e := mustManual(t, true)
	closed, err := NewManualEvent(true, "")
	require.NoError(t, err)
	require.NoError(t, closed.Close())

	_, _, err = WaitForOne([]Waitable{e, closed}, shortTimeout)
	require.Error(t, err)
}
