package sched

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc"
	"go.uber.org/atomic"
)

// ErrUnsupported is returned when a policy or lock kind is not available on
// the current platform.
var ErrUnsupported = errors.New("sched: not supported on this platform")

// Policy selects how a spawned unit's OS thread is scheduled.
type Policy string

const (
	// PolicyFIFO runs units under SCHED_FIFO at their requested level.
	PolicyFIFO Policy = "fifo"
	// PolicyOther leaves units on the default time-sharing policy. Levels
	// are ignored. Useful for unprivileged dry runs.
	PolicyOther Policy = "other"
)

// ValidPolicies returns the list of valid policy names.
func ValidPolicies() []string {
	return []string{string(PolicyFIFO), string(PolicyOther)}
}

// ParsePolicy converts a policy name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyFIFO, PolicyOther:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("sched: unknown policy %q", s)
	}
}

// Unit is a running unit of schedulable work, handed to the function it runs.
type Unit interface {
	// Name returns the name the unit was spawned with.
	Name() string
	// ShouldStop reports whether an external stop was requested. Workers
	// check it on every loop iteration.
	ShouldStop() bool
	// Yield gives the processor back to the scheduler.
	Yield()
}

// Spawner creates units of work.
type Spawner interface {
	// Spawn starts fn on a new unit at the given policy level. It returns
	// once the unit exists and its policy has been applied, so a non-nil
	// error means fn will never run.
	Spawn(name string, level int, fn func(Unit)) error
	// Wait blocks until every spawned unit has returned.
	Wait() error
}

// Reserver is implemented by spawners that need to know up front how many
// units will be alive at once.
type Reserver interface {
	Reserve(units int)
}

// PolicyReporter is implemented by spawners that apply a scheduling policy.
type PolicyReporter interface {
	Policy() Policy
}

// ThreadSpawner runs every unit on a dedicated, locked OS thread. Units are
// asked to stop when the context passed to NewThreadSpawner is done.
type ThreadSpawner struct {
	policy Policy
	wg     conc.WaitGroup
	stop   atomic.Bool
	detach func() bool

	mu        sync.Mutex
	prevProcs int
}

// NewThreadSpawner creates a ThreadSpawner. The spawner raises its stop flag
// when ctx is done.
func NewThreadSpawner(ctx context.Context, policy Policy) *ThreadSpawner {
	s := &ThreadSpawner{policy: policy}
	s.detach = context.AfterFunc(ctx, func() { s.stop.Store(true) })
	return s
}

// Policy returns the policy applied to spawned units.
func (s *ThreadSpawner) Policy() Policy {
	return s.policy
}

// Reserve raises GOMAXPROCS so that the given number of locked units can
// each hold a P at the same time. Without it the Go scheduler, not the
// kernel, would decide which runnable thread gets to execute. The previous
// value is restored by Wait.
func (s *ThreadSpawner) Reserve(units int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := units + 1
	if cur := runtime.GOMAXPROCS(0); cur < want {
		prev := runtime.GOMAXPROCS(want)
		if s.prevProcs == 0 {
			s.prevProcs = prev
		}
	}
}

// Spawn implements Spawner.
func (s *ThreadSpawner) Spawn(name string, level int, fn func(Unit)) error {
	started := make(chan error, 1)
	s.wg.Go(func() {
		// Never unlocked: a thread that carried a real-time policy must
		// exit with its goroutine instead of returning to the runtime pool.
		runtime.LockOSThread()
		if err := applyPolicy(s.policy, level); err != nil {
			started <- err
			return
		}
		started <- nil
		fn(&threadUnit{name: name, stop: &s.stop})
	})
	if err := <-started; err != nil {
		return fmt.Errorf("spawn %s: %w", name, err)
	}
	return nil
}

// Stop asks every unit to stop, as if the context had been cancelled.
func (s *ThreadSpawner) Stop() {
	s.stop.Store(true)
}

// Wait implements Spawner. A panic in any unit is returned as an error.
func (s *ThreadSpawner) Wait() error {
	recovered := s.wg.WaitAndRecover()
	s.detach()

	s.mu.Lock()
	if s.prevProcs != 0 {
		runtime.GOMAXPROCS(s.prevProcs)
		s.prevProcs = 0
	}
	s.mu.Unlock()

	if recovered != nil {
		return recovered.AsError()
	}
	return nil
}

type threadUnit struct {
	name string
	stop *atomic.Bool
}

func (u *threadUnit) Name() string     { return u.name }
func (u *threadUnit) ShouldStop() bool { return u.stop.Load() }
func (u *threadUnit) Yield()           { osYield() }
