// Package tui renders a live scoreboard of running games.
//
// The scoreboard runs on an ordinary goroutine. On a host where the game
// saturates every CPU with real-time units it may stall until the game ends;
// that is expected.
package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/atomic"

	"github.com/Iron-Ham/schedfootball/internal/event"
	"github.com/Iron-Ham/schedfootball/internal/football"
)

// eventBuffer bounds how many bus events can wait for the program.
const eventBuffer = 256

// Options configures an App.
type Options struct {
	// Runs is the number of games that will be played.
	Runs int
	// Refresh is how often the ball is sampled.
	Refresh time.Duration
	// OnQuit is called when the user quits the scoreboard.
	OnQuit func()
	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
	// NoInput disables keyboard input entirely.
	NoInput bool
	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool
}

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	bus     *event.Bus
	subID   string
	events  chan tea.Msg
	dropped atomic.Int64
}

// New creates a scoreboard fed by bus.
func New(bus *event.Bus, opts Options) *App {
	if opts.Refresh <= 0 {
		opts.Refresh = 100 * time.Millisecond
	}

	var progOpts []tea.ProgramOption
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	switch {
	case opts.NoInput:
		progOpts = append(progOpts, tea.WithInput(nil))
	case opts.Input != nil:
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	a := &App{
		program: tea.NewProgram(NewModel(opts.Runs, opts.Refresh, opts.OnQuit), progOpts...),
		bus:     bus,
		events:  make(chan tea.Msg, eventBuffer),
	}
	a.subID = bus.SubscribeAll(a.handle)
	return a
}

// handle runs on the publisher's goroutine, which may be the referee. It
// must never block.
func (a *App) handle(e event.Event) {
	a.enqueue(eventMsg{event: e})
}

func (a *App) enqueue(msg tea.Msg) {
	select {
	case a.events <- msg:
	default:
		a.dropped.Inc()
	}
}

// Dropped returns how many messages were discarded because the program
// could not keep up.
func (a *App) Dropped() int64 {
	return a.dropped.Load()
}

// Run starts the program and blocks until it exits, either because Done
// was called, the user quit or ctx was cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.bus.Unsubscribe(a.subID)

	fwdCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.forward(fwdCtx)

	stop := context.AfterFunc(ctx, a.program.Quit)
	defer stop()

	_, err := a.program.Run()
	return err
}

// forward moves queued messages into the program.
func (a *App) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-a.events:
			a.program.Send(msg)
		}
	}
}

// Game announces game index (1-based) before it is started, so that none
// of its events arrive before the scoreboard knows its run ID.
func (a *App) Game(index int, runID string, gameTime time.Duration) {
	a.enqueue(gameMsg{index: index, runID: runID, gameTime: gameTime})
}

// Attach hands the scoreboard of a started game to the program.
func (a *App) Attach(g *football.Game) {
	a.enqueue(boardMsg{players: g.Players(), board: g.State()})
}

// Result records the outcome of a game.
func (a *App) Result(res football.Result) {
	a.enqueue(resultMsg{result: res})
}

// Done tells the scoreboard that no more games will be played. The program
// exits once it has drawn the final state.
func (a *App) Done() {
	select {
	case a.events <- doneMsg{}:
	default:
		a.program.Quit()
	}
}
