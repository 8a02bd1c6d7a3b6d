//go:build linux

package sched

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	futexLockPI      = 6
	futexUnlockPI    = 7
	futexPrivateFlag = 128
)

// piMutex is a PI futex. The word holds the owner's TID, plus the kernel's
// FUTEX_WAITERS bit once somebody blocks on it. Lock and Unlock must run on
// the same OS thread.
type piMutex struct {
	word uint32
}

func newPIMutexes(n int) ([]piMutex, error) {
	return make([]piMutex, n), nil
}

func (m *piMutex) Lock() {
	tid := uint32(unix.Gettid())
	if atomic.CompareAndSwapUint32(&m.word, 0, tid) {
		return
	}
	for {
		_, _, errno := unix.Syscall6(unix.SYS_FUTEX,
			uintptr(unsafe.Pointer(&m.word)), futexLockPI|futexPrivateFlag, 0, 0, 0, 0)
		switch errno {
		case 0:
			return
		case unix.EINTR, unix.EAGAIN:
			continue
		default:
			panic(fmt.Sprintf("sched: FUTEX_LOCK_PI: %v", errno))
		}
	}
}

func (m *piMutex) Unlock() {
	tid := uint32(unix.Gettid())
	if atomic.CompareAndSwapUint32(&m.word, tid, 0) {
		return
	}
	_, _, errno := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&m.word)), futexUnlockPI|futexPrivateFlag, 0, 0, 0, 0)
	if errno != 0 {
		panic(fmt.Sprintf("sched: FUTEX_UNLOCK_PI: %v", errno))
	}
}
