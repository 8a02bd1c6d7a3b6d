package cmd

import (
	"fmt"

	"github.com/Iron-Ham/schedfootball/internal/report"
)

// Exit codes returned by the run command.
const (
	ExitViolation = 1 // a game was scored and the ball moved
	ExitAborted   = 2 // the harness could not complete a game
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	return e.Msg
}

// outcome turns run totals into the command's error. Aborts win over
// violations so a broken harness is never mistaken for a broken scheduler.
func outcome(t report.Totals) error {
	switch {
	case t.Aborted > 0:
		return &ExitError{
			Code: ExitAborted,
			Msg:  fmt.Sprintf("harness aborted %d of %d runs", t.Aborted, t.Runs),
		}
	case t.Failed > 0:
		return &ExitError{
			Code: ExitViolation,
			Msg:  fmt.Sprintf("scheduling invariant violated in %d of %d runs", t.Failed, t.Runs),
		}
	default:
		return nil
	}
}
