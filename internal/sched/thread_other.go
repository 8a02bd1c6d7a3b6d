//go:build !linux

package sched

import (
	"fmt"
	"runtime"
)

func applyPolicy(p Policy, _ int) error {
	switch p {
	case PolicyOther:
		return nil
	case PolicyFIFO:
		return fmt.Errorf("SCHED_FIFO: %w", ErrUnsupported)
	default:
		return fmt.Errorf("sched: unknown policy %q", p)
	}
}

func osYield() {
	runtime.Gosched()
}

// AvailableCPUs returns runtime.NumCPU.
func AvailableCPUs() int {
	return runtime.NumCPU()
}
