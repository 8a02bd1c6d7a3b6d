package football

import (
	"time"

	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// Every player loop has the same shape: stop check, then Yield, then the
// role's work. Yield is the only place a player gives up its CPU on its own
// accord; removing it makes the game meaningless. A stop request exits
// immediately, and deferred unlocks release whatever the player holds.

// hold keeps the calling defender on the field until the game ends.
func (g *Game) hold(u sched.Unit) {
	for !g.state.GameOver() {
		if u.ShouldStop() {
			return
		}
		u.Yield()
	}
}

// lowDefense takes Low[i] and sits on it. The lock is taken before checking
// in so that no mid defender can reach it first.
func (g *Game) lowDefense(u sched.Unit, i int) {
	low := g.locks.Low[i]
	low.Lock()
	defer low.Unlock()

	g.state.CheckIn()
	g.hold(u)
}

// midDefense takes its mid lock, checks in, then blocks on Low[i], which low
// defender i already holds. It should almost never get past that point.
func (g *Game) midDefense(u sched.Unit, i int) {
	mid := g.locks.Mid[g.opts.IndexMapping.midIndex(i, g.players)]
	mid.Lock()
	defer mid.Unlock()

	g.state.CheckIn()

	low := g.locks.Low[i]
	low.Lock()
	defer low.Unlock()

	g.hold(u)
}

// offense advances the ball every time it gets a CPU.
func (g *Game) offense(u sched.Unit, _ int) {
	g.state.CheckIn()
	for !g.state.GameOver() {
		if u.ShouldStop() {
			return
		}
		u.Yield()
		g.state.AdvanceBall()
	}
}

// hiDefense blocks on Mid[i]. With priority inheritance its priority flows
// to the mid defender holding Mid[i] and from there to a low defender.
func (g *Game) hiDefense(u sched.Unit, i int) {
	g.state.CheckIn()

	mid := g.locks.Mid[i]
	mid.Lock()
	defer mid.Unlock()

	g.hold(u)
}

// crazyFan burns a CPU in short bursts, leaving gaps that only a boosted
// defender should fill.
func (g *Game) crazyFan(u sched.Unit, _ int) {
	g.state.CheckIn()
	for !g.state.GameOver() {
		if u.ShouldStop() {
			return
		}
		u.Yield()
		spin(g.opts.FanSpin)
		time.Sleep(g.opts.FanSleep)
	}
}

// spin busy-waits for d without giving up the CPU.
func spin(d time.Duration) {
	for start := time.Now(); time.Since(start) < d; {
	}
}
