//go:build linux

package football

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// requireRT skips unless real-time tests were requested and the process may
// use SCHED_FIFO.
func requireRT(t *testing.T) {
	t.Helper()
	if os.Getenv("SCHEDFOOTBALL_RT_TESTS") != "1" {
		t.Skip("set SCHEDFOOTBALL_RT_TESTS=1 to run real-time games")
	}
	probe := sched.NewThreadSpawner(context.Background(), sched.PolicyFIFO)
	if err := probe.Spawn("probe", 1, func(sched.Unit) {}); err != nil {
		t.Skipf("SCHED_FIFO unavailable: %v", err)
	}
	require.NoError(t, probe.Wait())
}

func runRT(t *testing.T, kind sched.LockKind) Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sp := sched.NewThreadSpawner(ctx, sched.PolicyFIFO)
	opts := DefaultOptions()
	opts.GameTime = 2 * time.Second
	opts.LockKind = kind

	g, err := Start(ctx, Config{Options: opts, Spawner: sp})
	require.NoError(t, err)
	res := g.Wait()
	require.NoError(t, res.Err)
	return res
}

func TestRT_PriorityInheritanceHoldsTheLine(t *testing.T) {
	requireRT(t)

	res := runRT(t, sched.LockPI)
	assert.Equal(t, VerdictPass, res.Verdict(), "ball moved to %d", res.FinalBallPos)
}

func TestRT_PlainLocksLetOffenseThrough(t *testing.T) {
	requireRT(t)

	res := runRT(t, sched.LockPlain)
	if res.Passed {
		t.Log("plain locks passed; the inversion window was never hit on this machine")
	}
	assert.False(t, res.Stopped)
}
