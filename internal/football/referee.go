package football

import (
	"context"
	"errors"
	"time"

	"github.com/Iron-Ham/schedfootball/internal/event"
	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// referee runs the game on its own unit at the top priority.
func (g *Game) referee(ctx context.Context, u sched.Unit) {
	defer close(g.done)

	res := &g.result
	res.StartedAt = time.Now()
	g.logger.Info("started referee",
		"game_time", g.opts.GameTime,
		"players_per_team", g.players,
		"lock", g.opts.LockKind,
		"index_mapping", g.opts.IndexMapping,
	)

	g.play(ctx, u, res)

	g.state.EndGame()
	res.Phase = g.Phase()
	g.enter(PhaseDone)
	res.FinishedAt = time.Now()
	g.logger.Info("game over", "verdict", res.Verdict())
}

// play walks the referee through every phase up to scoring.
func (g *Game) play(ctx context.Context, u sched.Unit, res *Result) {
	lineup := []struct {
		phase Phase
		role  Role
		play  func(sched.Unit, int)
	}{
		{PhaseSpawningLow, RoleLowDefense, g.lowDefense},
		{PhaseSpawningMid, RoleMidDefense, g.midDefense},
		{PhaseSpawningOffense, RoleOffense, g.offense},
		{PhaseSpawningHi, RoleHiDefense, g.hiDefense},
		{PhaseSpawningFans, RoleCrazyFan, g.crazyFan},
	}

	for _, team := range lineup {
		g.enter(team.phase)
		if err := g.spawnTeam(ctx, u, team.role, team.play); err != nil {
			if errors.Is(err, errStopped) {
				g.stop(res)
				return
			}
			g.abort(res, err)
			return
		}
	}
	g.logger.Info("all players checked in, starting game")

	// Reset only now: players may have been scheduled between creation and
	// the last check-in. The ball reads zero when Measuring is published.
	g.state.ResetBall()
	g.enter(PhaseMeasuring)

	timer := time.NewTimer(g.opts.GameTime)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		res.Stopped = true
	}

	g.enter(PhaseScoring)
	res.FinalBallPos = g.state.BallPos()
	g.state.EndGame()

	if res.Stopped {
		g.stop(res)
		return
	}

	res.Passed = res.FinalBallPos == 0
	g.logger.Info("final ball position", "ball_pos", res.FinalBallPos, "passed", res.Passed)
	if !res.Passed {
		g.logger.Warn("scheduling invariant violated: offense moved the ball",
			"ball_pos", res.FinalBallPos,
			"lock", g.opts.LockKind,
		)
	}
	g.bus.Publish(event.NewGameFinishedEvent(g.id, res.FinalBallPos, res.Passed, false))
}

// abort ends the game early because the harness failed.
func (g *Game) abort(res *Result, err error) {
	g.state.EndGame()
	res.Err = err
	phase := g.Phase()
	g.logger.Error("aborting game", "phase", phase, "error", err)
	g.bus.Publish(event.NewGameAbortedEvent(g.id, string(phase), err.Error()))
}

// stop ends the game early because an operator asked for it.
func (g *Game) stop(res *Result) {
	g.state.EndGame()
	res.Stopped = true
	g.logger.Warn("stop requested, game ended without a verdict", "phase", g.Phase())
	g.bus.Publish(event.NewGameFinishedEvent(g.id, g.state.BallPos(), false, true))
}

// enter moves the referee to phase p.
func (g *Game) enter(p Phase) {
	prev := g.Phase()
	g.phase.Store(string(p))
	g.logger.Debug("phase change", "from", prev, "to", p)
	g.bus.Publish(event.NewPhaseChangeEvent(g.id, string(prev), string(p)))
}
