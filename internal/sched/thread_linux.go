//go:build linux

package sched

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// applyPolicy switches the calling thread to the given policy.
func applyPolicy(p Policy, level int) error {
	switch p {
	case PolicyOther:
		return nil
	case PolicyFIFO:
		attr := unix.SchedAttr{
			Policy:   unix.SCHED_FIFO,
			Priority: uint32(level),
		}
		if err := unix.SchedSetAttr(0, &attr, 0); err != nil {
			return fmt.Errorf("set SCHED_FIFO priority %d: %w", level, err)
		}
		return nil
	default:
		return fmt.Errorf("sched: unknown policy %q", p)
	}
}

func osYield() {
	_, _, _ = unix.Syscall(unix.SYS_SCHED_YIELD, 0, 0, 0)
}

// AvailableCPUs returns the number of CPUs in the calling thread's affinity
// mask, falling back to runtime.NumCPU.
func AvailableCPUs() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	if n := set.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}
