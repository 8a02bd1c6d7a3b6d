package football

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Iron-Ham/schedfootball/internal/event"
	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// errStopped is returned by spawnTeam when a stop request interrupts the
// check-in barrier.
var errStopped = errors.New("stop requested")

// spawnTeam puts one player per CPU on the field running play, then waits
// until every one of them has checked in.
func (g *Game) spawnTeam(ctx context.Context, ref sched.Unit, role Role, play func(sched.Unit, int)) error {
	logger := g.logger.WithPhase(string(g.Phase())).WithTeam(role.String())
	start := time.Now()
	want := g.state.PlayersReady() + int64(g.players)
	level := g.opts.Levels.Level(role.Priority())

	logger.Info("spawning team", "players", g.players, "level", level)
	for i := 0; i < g.players; i++ {
		name := fmt.Sprintf("%s-%d", role, i)
		err := g.spawner.Spawn(name, level, func(u sched.Unit) { play(u, i) })
		if err != nil {
			return &SpawnError{
				Role:      role,
				Kind:      ErrCreateFailed,
				CheckedIn: g.state.PlayersReady(),
				Want:      want,
				Err:       err,
			}
		}
	}

	ticker := time.NewTicker(g.opts.CheckinPoll)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if g.opts.CheckinTimeout > 0 {
		timer := time.NewTimer(g.opts.CheckinTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for g.state.PlayersReady() < want {
		select {
		case <-ticker.C:
		case <-deadline:
			return &SpawnError{
				Role:      role,
				Kind:      ErrCheckinTimeout,
				CheckedIn: g.state.PlayersReady(),
				Want:      want,
			}
		case <-ctx.Done():
			return fmt.Errorf("%s check-in: %w: %w", role, errStopped, ctx.Err())
		}
		if ref.ShouldStop() {
			return fmt.Errorf("%s check-in: %w", role, errStopped)
		}
	}

	elapsed := time.Since(start)
	ready := g.state.PlayersReady()
	logger.Info("team checked in", "players_ready", ready, "elapsed", elapsed)
	g.bus.Publish(event.NewTeamCheckedInEvent(g.id, role.String(), g.players, ready, elapsed))
	return nil
}
