package football

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// fakeSpawner runs units as plain goroutines. It has no notion of priority,
// which makes it the "broken scheduler" of these tests.
type fakeSpawner struct {
	mu      sync.Mutex
	spawned []string
	levels  map[string]int
	wg      sync.WaitGroup
	stop    atomic.Bool

	// failOn makes Spawn fail for the unit with this name.
	failOn string
	// stall keeps matching units from ever running their function; they
	// idle until stopped.
	stall func(name string) bool
	// onYield, when set, runs inside every Yield of every unit.
	onYield func(name string)
}

func newFakeSpawner() *fakeSpawner {
	return &fakeSpawner{levels: make(map[string]int)}
}

// stopOn raises the stop flag when ctx is done.
func (s *fakeSpawner) stopOn(ctx context.Context) {
	context.AfterFunc(ctx, func() { s.stop.Store(true) })
}

func (s *fakeSpawner) Spawn(name string, level int, fn func(sched.Unit)) error {
	s.mu.Lock()
	s.spawned = append(s.spawned, name)
	s.levels[name] = level
	s.mu.Unlock()

	if name == s.failOn {
		return errors.New("injected spawn failure")
	}

	u := &fakeUnit{name: name, stop: &s.stop, onYield: s.onYield}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if s.stall != nil && s.stall(name) {
			for !u.ShouldStop() {
				time.Sleep(time.Millisecond)
			}
			return
		}
		fn(u)
	}()
	return nil
}

func (s *fakeSpawner) Wait() error {
	s.wg.Wait()
	return nil
}

// names returns the spawned unit names that start with prefix.
func (s *fakeSpawner) names(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, n := range s.spawned {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}

func (s *fakeSpawner) level(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels[name]
}

type fakeUnit struct {
	name    string
	stop    *atomic.Bool
	onYield func(name string)
}

func (u *fakeUnit) Name() string     { return u.name }
func (u *fakeUnit) ShouldStop() bool { return u.stop.Load() }

func (u *fakeUnit) Yield() {
	if u.onYield != nil {
		u.onYield(u.name)
	}
	runtime.Gosched()
}

// lockLog records lock operations in order.
type lockLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *lockLog) add(op string) {
	l.mu.Lock()
	l.ops = append(l.ops, op)
	l.mu.Unlock()
}

func (l *lockLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

type recordingLock struct {
	name string
	log  *lockLog
	mu   sync.Mutex
}

func (r *recordingLock) Lock() {
	r.mu.Lock()
	r.log.add("lock " + r.name)
}

func (r *recordingLock) Unlock() {
	r.log.add("unlock " + r.name)
	r.mu.Unlock()
}

// recordingPool builds an n-wide pool of recording locks named low-i/mid-i.
func recordingPool(n int, log *lockLog) *LockPool {
	pool := &LockPool{Low: make([]sched.Lock, n), Mid: make([]sched.Lock, n)}
	for i := 0; i < n; i++ {
		pool.Low[i] = &recordingLock{name: "low-" + itoa(i), log: log}
		pool.Mid[i] = &recordingLock{name: "mid-" + itoa(i), log: log}
	}
	return pool
}

func itoa(i int) string {
	return string(rune('0' + i))
}

// lockable reports whether l can be taken within d.
func lockable(l sched.Lock, d time.Duration) bool {
	got := make(chan struct{})
	go func() {
		l.Lock()
		l.Unlock()
		close(got)
	}()
	select {
	case <-got:
		return true
	case <-time.After(d):
		return false
	}
}
