package football

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/Iron-Ham/schedfootball/internal/event"
	"github.com/Iron-Ham/schedfootball/internal/logging"
	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// numTeams is the number of worker teams; with the referee it bounds the
// number of units alive at once.
const numTeams = 5

// Options tune a game. Zero values are replaced by DefaultOptions, except
// CheckinTimeout, where zero means wait forever.
type Options struct {
	// Players per team. 0 means one per available CPU.
	Players int
	// GameTime is how long the referee measures for.
	GameTime time.Duration
	// CheckinTimeout bounds each team's check-in. 0 waits forever.
	CheckinTimeout time.Duration
	// CheckinPoll is the check-in polling interval.
	CheckinPoll time.Duration
	// FanSpin and FanSleep shape each crazy fan iteration.
	FanSpin  time.Duration
	FanSleep time.Duration
	// IndexMapping chains mid defenders to mid locks.
	IndexMapping IndexMapping
	// LockKind selects the lock implementation.
	LockKind sched.LockKind
	// Levels maps priority classes to scheduler levels.
	Levels Levels
}

// DefaultOptions returns the classic game: ten seconds, a 30 second check-in
// limit polled every millisecond, and priority-inheriting locks.
func DefaultOptions() Options {
	return Options{
		GameTime:       10 * time.Second,
		CheckinTimeout: 30 * time.Second,
		CheckinPoll:    time.Millisecond,
		FanSpin:        time.Millisecond,
		FanSleep:       2 * time.Millisecond,
		IndexMapping:   MappingSame,
		LockKind:       sched.LockPI,
		Levels:         DefaultLevels(),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.GameTime == 0 {
		o.GameTime = def.GameTime
	}
	if o.CheckinPoll == 0 {
		o.CheckinPoll = def.CheckinPoll
	}
	if o.FanSpin == 0 {
		o.FanSpin = def.FanSpin
	}
	if o.FanSleep == 0 {
		o.FanSleep = def.FanSleep
	}
	if o.IndexMapping == "" {
		o.IndexMapping = def.IndexMapping
	}
	if o.LockKind == "" {
		o.LockKind = def.LockKind
	}
	if o.Levels == (Levels{}) {
		o.Levels = def.Levels
	}
	return o
}

// Validate checks opts for values that cannot produce a meaningful game.
func (o Options) Validate() error {
	var errs []error
	if o.Players < 0 {
		errs = append(errs, fmt.Errorf("players must be non-negative, got %d", o.Players))
	}
	if o.GameTime <= 0 {
		errs = append(errs, fmt.Errorf("game time must be positive, got %v", o.GameTime))
	}
	if o.CheckinTimeout < 0 {
		errs = append(errs, fmt.Errorf("check-in timeout must be non-negative, got %v", o.CheckinTimeout))
	}
	if o.CheckinPoll <= 0 {
		errs = append(errs, fmt.Errorf("check-in poll must be positive, got %v", o.CheckinPoll))
	}
	if o.FanSpin < 0 || o.FanSleep < 0 {
		errs = append(errs, errors.New("fan spin and sleep must be non-negative"))
	}
	if _, err := ParseIndexMapping(string(o.IndexMapping)); err != nil {
		errs = append(errs, err)
	}
	if _, err := sched.ParseLockKind(string(o.LockKind)); err != nil {
		errs = append(errs, err)
	}
	if err := o.Levels.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Config holds the collaborators a game runs on.
type Config struct {
	Options
	// Spawner creates every unit, the referee included. Required.
	Spawner sched.Spawner
	// Bus receives lifecycle events. Optional.
	Bus *event.Bus
	// Logger receives progress and result logs. Optional.
	Logger *logging.Logger
	// RunID identifies the game. A random UUID is used when empty.
	RunID string
}

// Game is a running game.
type Game struct {
	id      string
	opts    Options
	players int
	state   State
	locks   *LockPool
	spawner sched.Spawner
	bus     *event.Bus
	logger  *logging.Logger
	phase   atomic.String

	done     chan struct{}
	result   Result
	waitOnce sync.Once
	final    Result
}

// Start sets up the field and kicks off the referee, returning as soon as
// the referee unit exists. The game itself runs asynchronously; use Wait for
// the outcome. ctx cancellation stops the referee; stopping the players is
// the spawner's job.
func Start(ctx context.Context, cfg Config) (*Game, error) {
	if cfg.Spawner == nil {
		return nil, errors.New("football: Spawner is required")
	}
	opts := cfg.Options.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("football: invalid options: %w", err)
	}

	players := opts.Players
	if players == 0 {
		players = sched.AvailableCPUs()
	}
	if players < 1 {
		return nil, fmt.Errorf("football: need at least one player per team, got %d", players)
	}

	locks, err := NewLockPool(opts.LockKind, players)
	if err != nil {
		return nil, err
	}

	id := cfg.RunID
	if id == "" {
		id = uuid.NewString()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	if p, ok := cfg.Spawner.(sched.PolicyReporter); ok {
		logger = logger.With("policy", p.Policy())
	}

	g := &Game{
		id:      id,
		opts:    opts,
		players: players,
		locks:   locks,
		spawner: cfg.Spawner,
		bus:     cfg.Bus,
		logger:  logger.WithRun(id),
		done:    make(chan struct{}),
	}
	g.phase.Store(string(PhaseInit))
	g.result = Result{
		RunID:        id,
		Players:      players,
		GameTime:     opts.GameTime,
		LockKind:     opts.LockKind,
		IndexMapping: opts.IndexMapping,
		Phase:        PhaseInit,
	}

	if r, ok := cfg.Spawner.(sched.Reserver); ok {
		r.Reserve(numTeams*players + 1)
	}

	err = cfg.Spawner.Spawn(RoleReferee.String(), opts.Levels.Level(PriorityReferee), func(u sched.Unit) {
		g.referee(ctx, u)
	})
	if err != nil {
		g.state.EndGame()
		_ = cfg.Spawner.Wait()
		return nil, &SpawnError{Role: RoleReferee, Kind: ErrCreateFailed, Err: err}
	}
	return g, nil
}

// ID returns the run ID.
func (g *Game) ID() string { return g.id }

// Players returns the number of players per team.
func (g *Game) Players() int { return g.players }

// State returns the live scoreboard.
func (g *Game) State() *State { return &g.state }

// Locks returns the lock pool.
func (g *Game) Locks() *LockPool { return g.locks }

// Phase returns the referee's current phase.
func (g *Game) Phase() Phase { return Phase(g.phase.Load()) }

// Done is closed when the referee has finished, before the players have
// necessarily left the field.
func (g *Game) Done() <-chan struct{} { return g.done }

// Wait blocks until the referee and every player have exited and returns
// the result. It may be called more than once.
func (g *Game) Wait() Result {
	g.waitOnce.Do(func() {
		<-g.done
		res := g.result
		if err := g.spawner.Wait(); err != nil && res.Err == nil {
			res.Err = fmt.Errorf("player crashed: %w", err)
		}
		g.final = res
	})
	return g.final
}
