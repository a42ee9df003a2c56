//go:build windows

package waitable

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows backend: events and semaphores are real kernel objects, and
// multi-object waits go through WaitForMultipleObjects. Event creation and
// waiting use golang.org/x/sys/windows directly; the semaphore calls it does
// not export are loaded from kernel32.

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procCreateSemaphoreW = modkernel32.NewProc("CreateSemaphoreW")
	procReleaseSemaphore = modkernel32.NewProc("ReleaseSemaphore")
)

// Handle is the opaque identity of a waitable object. It carries no
// ownership; it stays valid until the last handle to the object is closed.
type Handle struct {
	h windows.Handle
}

// namePtr returns the UTF-16 form of name, or nil for the empty string.
// Names are pre-validated by checkName, so conversion failures surface only
// for malformed UTF-8, which the kernel cannot represent either.
func namePtr(name string) (*uint16, error) {
	if name == "" {
		return nil, nil
	}
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, ErrInvalidName
	}
	return p, nil
}

func sysCreateEvent(manual, signaled bool, name string) (Handle, error) {
	np, err := namePtr(name)
	if err != nil {
		return Handle{}, err
	}
	var manualReset, initialState uint32
	if manual {
		manualReset = 1
	}
	if signaled {
		initialState = 1
	}
	h, err := windows.CreateEvent(nil, manualReset, initialState, np)
	if err != nil && err != windows.ERROR_ALREADY_EXISTS {
		return Handle{}, err
	}
	return Handle{h: h}, nil
}

func sysCreateSemaphore(initCount, maxCount int, name string) (Handle, error) {
	np, err := namePtr(name)
	if err != nil {
		return Handle{}, err
	}
	r, _, callErr := procCreateSemaphoreW.Call(
		0,
		uintptr(initCount),
		uintptr(maxCount),
		uintptr(unsafe.Pointer(np)),
	)
	if r == 0 {
		return Handle{}, callErr
	}
	return Handle{h: windows.Handle(r)}, nil
}

func sysSetEvent(h Handle) error {
	return windows.SetEvent(h.h)
}

func sysResetEvent(h Handle) error {
	return windows.ResetEvent(h.h)
}

func sysReleaseSemaphore(h Handle, count int) (int, error) {
	var prev int32
	r, _, callErr := procReleaseSemaphore.Call(
		uintptr(h.h),
		uintptr(count),
		uintptr(unsafe.Pointer(&prev)),
	)
	if r == 0 {
		if callErr == windows.ERROR_TOO_MANY_POSTS {
			return 0, ErrSemaphoreOverflow
		}
		return 0, callErr
	}
	return int(prev), nil
}

func sysClose(h Handle) error {
	return windows.CloseHandle(h.h)
}

func sysWait(handles []Handle, millis uint32, waitAll bool) (waitOutcome, int, error) {
	n := uint32(len(handles))

	var ev uint32
	var err error
	if n == 1 {
		ev, err = windows.WaitForSingleObject(handles[0].h, millis)
	} else {
		hs := make([]windows.Handle, len(handles))
		for i, h := range handles {
			hs[i] = h.h
		}
		ev, err = windows.WaitForMultipleObjects(hs, waitAll, millis)
	}

	switch {
	case ev < windows.WAIT_OBJECT_0+n:
		if waitAll {
			return outcomeAll, -1, nil
		}
		return outcomeSignaled, int(ev - windows.WAIT_OBJECT_0), nil
	case ev == uint32(windows.WAIT_TIMEOUT):
		return outcomeTimeout, -1, nil
	case ev >= windows.WAIT_ABANDONED && ev < windows.WAIT_ABANDONED+n:
		return outcomeTimeout, -1, ErrAbandoned
	default:
		if err == nil {
			err = fmt.Errorf("unexpected wait return value %#x", ev)
		}
		return outcomeTimeout, -1, err
	}
}
