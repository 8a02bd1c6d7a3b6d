package tui

import (
	"time"

	"github.com/Iron-Ham/schedfootball/internal/event"
	"github.com/Iron-Ham/schedfootball/internal/football"
)

// Scoreboard is the live game state the model samples on every tick.
type Scoreboard interface {
	BallPos() uint64
	PlayersReady() int64
	GameOver() bool
}

// Messages

type tickMsg time.Time

// gameMsg announces a new game before it starts.
type gameMsg struct {
	index    int
	runID    string
	gameTime time.Duration
}

// boardMsg attaches the scoreboard of the started game.
type boardMsg struct {
	players int
	board   Scoreboard
}

// eventMsg carries a bus event into the program.
type eventMsg struct {
	event event.Event
}

// resultMsg carries the final result of a game.
type resultMsg struct {
	result football.Result
}

// doneMsg tells the model that no more games will be played.
type doneMsg struct{}
