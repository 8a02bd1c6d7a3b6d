package football

import (
	"time"

	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// Verdict summarizes a Result.
type Verdict string

// Possible verdicts.
const (
	VerdictPass    Verdict = "pass"
	VerdictFail    Verdict = "fail"
	VerdictAborted Verdict = "aborted"
	VerdictStopped Verdict = "stopped"
)

// Result is the outcome of one game.
type Result struct {
	RunID        string
	Players      int
	GameTime     time.Duration
	LockKind     sched.LockKind
	IndexMapping IndexMapping
	// Phase is the last phase entered before Done.
	Phase        Phase
	FinalBallPos uint64
	// Passed is true when the game was scored and the ball never moved.
	Passed bool
	// Stopped is true when an external stop ended the game early.
	Stopped bool
	// Err is set when the harness itself failed (spawn or check-in).
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Verdict classifies the result. A harness failure wins over everything
// else; an invariant violation is VerdictFail, never VerdictAborted.
func (r Result) Verdict() Verdict {
	switch {
	case r.Err != nil:
		return VerdictAborted
	case r.Stopped:
		return VerdictStopped
	case r.Passed:
		return VerdictPass
	default:
		return VerdictFail
	}
}
