package sched

import (
	"fmt"
	"sync"

	"github.com/sasha-s/go-deadlock"
)

// Lock is a blocking mutual-exclusion lock. There is no timeout variant.
type Lock interface {
	Lock()
	Unlock()
}

// LockKind selects the Lock implementation used by NewLocks.
type LockKind string

const (
	// LockPI is a priority-inheriting lock.
	LockPI LockKind = "pi"
	// LockPlain is an ordinary mutex with no priority inheritance.
	LockPlain LockKind = "plain"
)

// ValidLockKinds returns the list of valid lock kind names.
func ValidLockKinds() []string {
	return []string{string(LockPI), string(LockPlain)}
}

// ParseLockKind converts a lock kind name into a LockKind.
func ParseLockKind(s string) (LockKind, error) {
	switch LockKind(s) {
	case LockPI, LockPlain:
		return LockKind(s), nil
	default:
		return "", fmt.Errorf("sched: unknown lock kind %q", s)
	}
}

var plainOpts sync.Once

// NewLocks allocates n unlocked locks of the given kind.
func NewLocks(kind LockKind, n int) ([]Lock, error) {
	if n < 1 {
		return nil, fmt.Errorf("sched: lock count must be at least 1, got %d", n)
	}

	locks := make([]Lock, n)
	switch kind {
	case LockPI:
		pis, err := newPIMutexes(n)
		if err != nil {
			return nil, err
		}
		for i := range pis {
			locks[i] = &pis[i]
		}
	case LockPlain:
		plainOpts.Do(func() {
			// Defenders block on these for the whole game on purpose, and
			// defenders share locks across threads in no fixed order.
			deadlock.Opts.DeadlockTimeout = 0
			deadlock.Opts.DisableLockOrderDetection = true
		})
		plain := make([]deadlock.Mutex, n)
		for i := range plain {
			locks[i] = &plain[i]
		}
	default:
		return nil, fmt.Errorf("sched: unknown lock kind %q", kind)
	}
	return locks, nil
}
