// Package event provides a pub-sub bus that carries football game lifecycle
// events from the referee to observers such as the live scoreboard.
//
// Publishing is synchronous: handlers run on the publisher's goroutine. The
// referee publishes from a real-time thread, so handlers must be short and
// must never block. Anything slow (rendering, file I/O) should hand the event
// off to its own goroutine.
//
// # Event Types
//
// Types follow the pattern "category.action":
//   - game.phase_changed: [PhaseChangeEvent]
//   - team.checked_in: [TeamCheckedInEvent]
//   - game.aborted: [GameAbortedEvent]
//   - game.finished: [GameFinishedEvent]
//
// # Basic Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeGameFinished, func(e event.Event) {
//	    fin := e.(event.GameFinishedEvent)
//	    fmt.Println("final ball position", fin.FinalBallPos)
//	})
//
// # Thread Safety
//
// [Bus] is safe for concurrent use. A panicking handler is recovered and
// does not prevent delivery to the remaining handlers.
package event
