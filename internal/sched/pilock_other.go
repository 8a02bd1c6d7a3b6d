//go:build !linux

package sched

import "fmt"

type piMutex struct{}

func newPIMutexes(int) ([]piMutex, error) {
	return nil, fmt.Errorf("priority-inheriting locks: %w", ErrUnsupported)
}

func (m *piMutex) Lock()   {}
func (m *piMutex) Unlock() {}
