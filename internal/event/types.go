package event

import "time"

// Event types published by the referee.
const (
	TypePhaseChanged  = "game.phase_changed"
	TypeTeamCheckedIn = "team.checked_in"
	TypeGameAborted   = "game.aborted"
	TypeGameFinished  = "game.finished"
)

// Event is the interface that all events implement.
type Event interface {
	// EventType returns the "category.action" identifier of the event.
	EventType() string
	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
	RunID     string // Game run the event belongs to
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType, runID string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
		RunID:     runID,
	}
}

// PhaseChangeEvent is emitted on every referee phase transition.
type PhaseChangeEvent struct {
	baseEvent
	Previous string
	Current  string
}

// NewPhaseChangeEvent creates a PhaseChangeEvent.
func NewPhaseChangeEvent(runID, previous, current string) PhaseChangeEvent {
	return PhaseChangeEvent{
		baseEvent: newBaseEvent(TypePhaseChanged, runID),
		Previous:  previous,
		Current:   current,
	}
}

// TeamCheckedInEvent is emitted when every member of a team has checked in.
type TeamCheckedInEvent struct {
	baseEvent
	Team         string
	Players      int
	PlayersReady int64 // Total check-ins so far, across all teams
	Elapsed      time.Duration
}

// NewTeamCheckedInEvent creates a TeamCheckedInEvent.
func NewTeamCheckedInEvent(runID, team string, players int, ready int64, elapsed time.Duration) TeamCheckedInEvent {
	return TeamCheckedInEvent{
		baseEvent:    newBaseEvent(TypeTeamCheckedIn, runID),
		Team:         team,
		Players:      players,
		PlayersReady: ready,
		Elapsed:      elapsed,
	}
}

// GameAbortedEvent is emitted when the referee gives up before scoring.
type GameAbortedEvent struct {
	baseEvent
	Phase  string
	Reason string
}

// NewGameAbortedEvent creates a GameAbortedEvent.
func NewGameAbortedEvent(runID, phase, reason string) GameAbortedEvent {
	return GameAbortedEvent{
		baseEvent: newBaseEvent(TypeGameAborted, runID),
		Phase:     phase,
		Reason:    reason,
	}
}

// GameFinishedEvent is emitted once scoring completes or the game is stopped
// during measurement.
type GameFinishedEvent struct {
	baseEvent
	FinalBallPos uint64
	Passed       bool
	Stopped      bool
}

// NewGameFinishedEvent creates a GameFinishedEvent.
func NewGameFinishedEvent(runID string, finalBallPos uint64, passed, stopped bool) GameFinishedEvent {
	return GameFinishedEvent{
		baseEvent:    newBaseEvent(TypeGameFinished, runID),
		FinalBallPos: finalBallPos,
		Passed:       passed,
		Stopped:      stopped,
	}
}
