//go:build linux

package sched

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIMutex_Uncontended(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var m piMutex
	m.Lock()
	assert.NotZero(t, atomic.LoadUint32(&m.word), "owner TID should be recorded")
	m.Unlock()
	assert.Zero(t, atomic.LoadUint32(&m.word))
}

func TestPIMutex_ContendedHandoff(t *testing.T) {
	var m piMutex
	held := make(chan struct{})
	release := make(chan struct{})
	var acquired atomic.Bool

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		m.Lock()
		close(held)
		<-release
		m.Unlock()
	}()

	<-held
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		m.Lock()
		acquired.Store(true)
		m.Unlock()
	}()

	time.Sleep(20 * time.Millisecond)
	assert.False(t, acquired.Load(), "second locker must block while the lock is held")

	close(release)
	wg.Wait()
	require.True(t, acquired.Load())
	assert.Zero(t, atomic.LoadUint32(&m.word))
}
