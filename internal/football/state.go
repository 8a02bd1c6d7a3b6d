package football

import "go.uber.org/atomic"

// State is the scoreboard shared by the referee and every player. All
// fields are lock-free so that reading or updating them never perturbs the
// scheduling being measured.
type State struct {
	ballPos      atomic.Uint64
	playersReady atomic.Int64
	gameOver     atomic.Bool
	resets       atomic.Int32
}

// CheckIn records that one more player is ready.
func (s *State) CheckIn() {
	s.playersReady.Inc()
}

// PlayersReady returns the number of check-ins so far.
func (s *State) PlayersReady() int64 {
	return s.playersReady.Load()
}

// AdvanceBall moves the ball forward by one.
func (s *State) AdvanceBall() {
	s.ballPos.Inc()
}

// BallPos returns the current ball position.
func (s *State) BallPos() uint64 {
	return s.ballPos.Load()
}

// ResetBall puts the ball back at zero.
func (s *State) ResetBall() {
	s.ballPos.Store(0)
	s.resets.Inc()
}

// Resets returns how many times the ball has been reset.
func (s *State) Resets() int {
	return int(s.resets.Load())
}

// GameOver reports whether the referee has ended the game.
func (s *State) GameOver() bool {
	return s.gameOver.Load()
}

// EndGame ends the game. It is safe to call more than once.
func (s *State) EndGame() {
	s.gameOver.Store(true)
}
