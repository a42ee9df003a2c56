//go:build !windows

package waitable

import (
	"sync"
	"time"
)

// Portable backend. One dispatcher lock guards the state and waiter queue of
// every object, so a state transition and the release of the waiters it
// satisfies form a single indivisible step — the same property the kernel
// dispatcher provides on Windows.

// Handle is the opaque identity of a waitable object. It carries no
// ownership; it stays valid until the last handle to the object is closed.
type Handle struct {
	obj *object
}

type objectKind int

const (
	kindEvent objectKind = iota
	kindSemaphore
)

type object struct {
	kind objectKind

	// All fields below are guarded by disp.mu.
	manual   bool // events: reset discipline
	signaled bool // events: current state
	count    int  // semaphores: available counts
	maxCount int  // semaphores: ceiling
	waiters  []*waiter
	name     string
	refs     int
}

// waiter is one parked wait call, registered with every object it covers.
type waiter struct {
	objects []*object
	waitAll bool

	// Guarded by disp.mu until done is set; immutable afterwards.
	done  bool
	index int
	err   error

	wake chan struct{} // 1-slot; sent exactly once, under disp.mu
}

var disp = struct {
	mu    sync.Mutex
	named map[string]*object
}{
	named: make(map[string]*object),
}

func (o *object) signaledLocked() bool {
	if o.kind == kindSemaphore {
		return o.count > 0
	}
	return o.signaled
}

// consumeLocked applies the side effect of a successful wait: auto-reset
// events go unsignaled, semaphores lose one count, manual events are
// untouched.
func (o *object) consumeLocked() {
	if o.kind == kindSemaphore {
		o.count--
		return
	}
	if !o.manual {
		o.signaled = false
	}
}

func (o *object) removeWaiterLocked(w *waiter) {
	for i, cur := range o.waiters {
		if cur == w {
			o.waiters = append(o.waiters[:i], o.waiters[i+1:]...)
			return
		}
	}
}

func allSignaledLocked(objs []*object) bool {
	for _, o := range objs {
		if !o.signaledLocked() {
			return false
		}
	}
	return true
}

func waitableIndex(objs []*object, o *object) int {
	for i, cur := range objs {
		if cur == o {
			return i
		}
	}
	return -1
}

// completeLocked finishes a parked wait: it records the outcome, withdraws
// the waiter from every object it was registered with, and wakes it.
func (w *waiter) completeLocked(index int, err error) {
	w.done = true
	w.index = index
	w.err = err
	for _, o := range w.objects {
		o.removeWaiterLocked(w)
	}
	w.wake <- struct{}{}
}

// dispatchLocked releases waiters after o became (or stayed) signaled.
// Any-waiters consume o immediately; all-waiters are satisfied only when
// every object they cover is signaled at this moment, consuming all of them
// in the same step. Unsatisfiable all-waiters are skipped, not blocked on.
func (o *object) dispatchLocked() {
	i := 0
	for o.signaledLocked() && i < len(o.waiters) {
		w := o.waiters[i]
		if w.waitAll {
			if !allSignaledLocked(w.objects) {
				i++
				continue
			}
			for _, obj := range w.objects {
				obj.consumeLocked()
			}
			w.completeLocked(-1, nil)
		} else {
			o.consumeLocked()
			w.completeLocked(waitableIndex(w.objects, o), nil)
		}
		// completeLocked removed w from o.waiters; re-examine slot i.
	}
}

// openObject creates an object or, for a non-empty name, attaches to the
// existing object registered under it.
func openObject(kind objectKind, name string, manual, signaled bool, count, maxCount int) (*object, error) {
	disp.mu.Lock()
	defer disp.mu.Unlock()
	if name != "" {
		if o, ok := disp.named[name]; ok {
			if o.kind != kind {
				return nil, errKindMismatch
			}
			o.refs++
			return o, nil
		}
	}
	o := &object{
		kind:     kind,
		manual:   manual,
		signaled: signaled,
		count:    count,
		maxCount: maxCount,
		name:     name,
		refs:     1,
	}
	if name != "" {
		disp.named[name] = o
	}
	return o, nil
}

func sysCreateEvent(manual, signaled bool, name string) (Handle, error) {
	o, err := openObject(kindEvent, name, manual, signaled, 0, 0)
	if err != nil {
		return Handle{}, err
	}
	return Handle{obj: o}, nil
}

func sysCreateSemaphore(initCount, maxCount int, name string) (Handle, error) {
	o, err := openObject(kindSemaphore, name, false, false, initCount, maxCount)
	if err != nil {
		return Handle{}, err
	}
	return Handle{obj: o}, nil
}

func sysSetEvent(h Handle) error {
	o := h.obj
	disp.mu.Lock()
	defer disp.mu.Unlock()
	if o.refs <= 0 {
		return ErrClosed
	}
	o.signaled = true
	o.dispatchLocked()
	return nil
}

func sysResetEvent(h Handle) error {
	o := h.obj
	disp.mu.Lock()
	defer disp.mu.Unlock()
	if o.refs <= 0 {
		return ErrClosed
	}
	o.signaled = false
	return nil
}

func sysReleaseSemaphore(h Handle, count int) (int, error) {
	o := h.obj
	disp.mu.Lock()
	defer disp.mu.Unlock()
	if o.refs <= 0 {
		return 0, ErrClosed
	}
	if count > o.maxCount-o.count {
		return 0, ErrSemaphoreOverflow
	}
	prev := o.count
	o.count += count
	o.dispatchLocked()
	return prev, nil
}

func sysClose(h Handle) error {
	o := h.obj
	disp.mu.Lock()
	defer disp.mu.Unlock()
	if o.refs <= 0 {
		return ErrClosed
	}
	o.refs--
	if o.refs == 0 {
		if o.name != "" {
			delete(disp.named, o.name)
		}
		// Anyone still parked on the object lost it from under them.
		for len(o.waiters) > 0 {
			o.waiters[0].completeLocked(-1, ErrAbandoned)
		}
	}
	return nil
}

// sysWait blocks on a set of objects until one (or, with waitAll, every one)
// is signaled, or millis elapse. millis of zero polls; infiniteMillis never
// times out. The signal check, consumption and waiter registration all
// happen under the dispatcher lock, so an object observed signaled here is
// consumed before any concurrent waiter can see it.
func sysWait(handles []Handle, millis uint32, waitAll bool) (waitOutcome, int, error) {
	objs := make([]*object, len(handles))
	for i, h := range handles {
		objs[i] = h.obj
	}

	disp.mu.Lock()
	for i, o := range objs {
		if o == nil || o.refs <= 0 {
			disp.mu.Unlock()
			return outcomeTimeout, -1, ErrClosed
		}
		for j := 0; j < i; j++ {
			if objs[j] == o {
				disp.mu.Unlock()
				return outcomeTimeout, -1, ErrDuplicateWaitable
			}
		}
	}

	if waitAll {
		if allSignaledLocked(objs) {
			for _, o := range objs {
				o.consumeLocked()
			}
			disp.mu.Unlock()
			return outcomeAll, -1, nil
		}
	} else {
		for i, o := range objs {
			if o.signaledLocked() {
				o.consumeLocked()
				disp.mu.Unlock()
				return outcomeSignaled, i, nil
			}
		}
	}

	if millis == 0 {
		disp.mu.Unlock()
		return outcomeTimeout, -1, nil
	}

	w := &waiter{
		objects: objs,
		waitAll: waitAll,
		index:   -1,
		wake:    make(chan struct{}, 1),
	}
	for _, o := range objs {
		o.waiters = append(o.waiters, w)
	}
	disp.mu.Unlock()

	if millis == infiniteMillis {
		<-w.wake
	} else {
		timer := time.NewTimer(time.Duration(millis) * time.Millisecond)
		select {
		case <-w.wake:
			timer.Stop()
		case <-timer.C:
			disp.mu.Lock()
			if !w.done {
				for _, o := range objs {
					o.removeWaiterLocked(w)
				}
				disp.mu.Unlock()
				return outcomeTimeout, -1, nil
			}
			// Satisfied in the same instant the timer fired; the signal
			// side effect already happened, so report the signal.
			disp.mu.Unlock()
		}
	}

	if w.err != nil {
		return outcomeTimeout, -1, w.err
	}
	if waitAll {
		return outcomeAll, -1, nil
	}
	return outcomeSignaled, w.index, nil
}
