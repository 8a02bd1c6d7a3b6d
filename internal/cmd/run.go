package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Iron-Ham/schedfootball/internal/config"
	"github.com/Iron-Ham/schedfootball/internal/event"
	"github.com/Iron-Ham/schedfootball/internal/football"
	"github.com/Iron-Ham/schedfootball/internal/logging"
	"github.com/Iron-Ham/schedfootball/internal/report"
	"github.com/Iron-Ham/schedfootball/internal/sched"
	"github.com/Iron-Ham/schedfootball/internal/stopfile"
	"github.com/Iron-Ham/schedfootball/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one or more games",
	Long: `Play one or more games and report whether the offense ever moved the
ball.

SCHED_FIFO needs CAP_SYS_NICE (or root) and an RT runtime budget that lets
real-time threads use every CPU, e.g.:

  sysctl -w kernel.sched_rt_runtime_us=-1

Examples:
  # One ten second game with priority-inheriting locks
  schedfootball run

  # Show priority inversion with ordinary locks
  schedfootball run --lock plain --game-time 5s

  # Five games, written to a YAML report
  schedfootball run --runs 5 --report results.yaml

  # Rehearse without privileges (no verdict is meaningful)
  schedfootball run --policy other --players 2 --game-time 1s

Exit status is 1 when any game let the ball move and 2 when the harness
itself could not finish a game.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	def := config.Default()
	f := runCmd.Flags()
	f.Duration("game-time", def.Game.GameTime, "how long the referee measures the ball")
	f.Int("players", def.Game.Players, "players per team (0 = one per available CPU)")
	f.String("lock", def.Sched.Lock, "lock kind: pi, plain")
	f.String("policy", def.Sched.Policy, "scheduling policy: fifo, other")
	f.String("index-mapping", def.Game.IndexMapping, "mid defender to mid lock mapping: same, reversed")
	f.Duration("checkin-timeout", def.Game.CheckinTimeout, "per-team check-in limit (0 = wait forever)")
	f.Int("runs", def.Game.Runs, "number of games to play back to back")
	f.String("report", def.Report.File, "write a YAML report of every game to this file")
	f.String("stop-file", def.Game.StopFile, "end the current game when this file appears")
	f.Bool("tui", def.TUI.Enabled, "show a live scoreboard")

	bindings := map[string]string{
		"game.game_time":       "game-time",
		"game.players":         "players",
		"sched.lock":           "lock",
		"sched.policy":         "policy",
		"game.index_mapping":   "index-mapping",
		"game.checkin_timeout": "checkin-timeout",
		"game.runs":            "runs",
		"report.file":          "report",
		"game.stop_file":       "stop-file",
		"tui.enabled":          "tui",
	}
	bindFlags(f, bindings)
}

// spawnerFunc creates the spawner for one game.
type spawnerFunc func(ctx context.Context) sched.Spawner

// runner plays the configured number of games.
type runner struct {
	cfg        *config.Config
	logger     *logging.Logger
	bus        *event.Bus
	newSpawner spawnerFunc
	board      *tui.App // optional
}

func newThreadSpawnerFunc(policy sched.Policy) spawnerFunc {
	return func(ctx context.Context) sched.Spawner {
		return sched.NewThreadSpawner(ctx, policy)
	}
}

// play runs games until the configured count is reached or a game ends
// without a verdict.
func (r *runner) play(ctx context.Context) []football.Result {
	var results []football.Result
	for i := 1; i <= r.cfg.Game.Runs; i++ {
		if ctx.Err() != nil {
			r.logger.Warn("stop requested, skipping remaining games", "remaining", r.cfg.Game.Runs-i+1)
			break
		}

		res := r.playOne(ctx, i)
		results = append(results, res)
		if r.board != nil {
			r.board.Result(res)
		}
		if res.Stopped || res.Err != nil {
			break
		}
	}
	return results
}

// playOne plays game index. A game that cannot be started is reported as an
// aborted result rather than an error.
func (r *runner) playOne(ctx context.Context, index int) football.Result {
	runID := uuid.NewString()
	opts := r.cfg.Options()
	logger := r.logger.With("game", index)

	if r.board != nil {
		r.board.Game(index, runID, opts.GameTime)
	}

	g, err := football.Start(ctx, football.Config{
		Options: opts,
		Spawner: r.newSpawner(ctx),
		Bus:     r.bus,
		Logger:  logger,
		RunID:   runID,
	})
	if err != nil {
		logger.Error("failed to start game", "error", err)
		if errors.Is(err, os.ErrPermission) {
			logger.Error("SCHED_FIFO needs CAP_SYS_NICE or root; use --policy other for an unprivileged rehearsal")
		}
		return football.Result{
			RunID:        runID,
			GameTime:     opts.GameTime,
			LockKind:     opts.LockKind,
			IndexMapping: opts.IndexMapping,
			Phase:        football.PhaseInit,
			Err:          err,
		}
	}
	if r.board != nil {
		r.board.Attach(g)
	}
	return g.Wait()
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	useTUI := cfg.TUI.Enabled && term.IsTerminal(os.Stdout.Fd())
	logOpts := cfg.LoggerOptions()
	if useTUI && logOpts.Dir == "" {
		// Keep log lines from tearing through the scoreboard.
		logOpts.Output = io.Discard
	}
	logger, err := logging.NewLogger(logOpts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	if cfg.TUI.Enabled && !useTUI {
		logger.Warn("stdout is not a terminal, scoreboard disabled")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Game.DisableGC {
		// Real-time spinners starve the GC workers; a collection mid-game
		// would stall every player.
		prev := debug.SetGCPercent(-1)
		defer debug.SetGCPercent(prev)
	}

	policy := sched.Policy(cfg.Sched.Policy)
	r := &runner{
		cfg:        cfg,
		logger:     logger,
		bus:        event.NewBus(),
		newSpawner: newThreadSpawnerFunc(policy),
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	var watcher *stopfile.Watcher
	if path := cfg.Game.StopFile; path != "" {
		if removed, err := stopfile.Clear(path); err != nil {
			return fmt.Errorf("failed to clear stop file: %w", err)
		} else if removed {
			logger.Warn("removed leftover stop file", "path", path)
		}
		watcher, err = stopfile.New(path)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
	}

	if useTUI {
		r.board = tui.New(r.bus, tui.Options{
			Runs:      cfg.Game.Runs,
			Refresh:   cfg.TUI.RefreshInterval(),
			OnQuit:    cancelRun,
			AltScreen: true,
		})
	}

	logger.Info("starting",
		"runs", cfg.Game.Runs,
		"policy", policy,
		"lock", cfg.Sched.Lock,
		"cpus", sched.AvailableCPUs(),
	)

	var results []football.Result
	eg, egCtx := errgroup.WithContext(runCtx)
	eg.Go(func() error {
		results = r.play(egCtx)
		if r.board != nil {
			r.board.Done()
		}
		cancelRun()
		return nil
	})
	if watcher != nil {
		eg.Go(func() error {
			err := watcher.Wait(runCtx)
			switch {
			case err == nil:
				logger.Warn("stop file found, ending game", "path", watcher.Path())
				cancelRun()
				return nil
			case errors.Is(err, context.Canceled):
				return nil
			default:
				return err
			}
		})
	}
	if r.board != nil {
		eg.Go(func() error {
			if err := r.board.Run(runCtx); err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			return nil
		})
	}
	groupErr := eg.Wait()
	r.logDropped()

	if cfg.Report.File != "" {
		rep := report.New(report.Meta{
			Version: Version,
			Host:    hostname(),
			CPUs:    sched.AvailableCPUs(),
			Policy:  string(policy),
		}, results)
		if err := report.Write(cfg.Report.File, rep); err != nil {
			logger.Error("failed to write report", "path", cfg.Report.File, "error", err)
		} else {
			logger.Info("report written", "path", cfg.Report.File)
		}
	}

	if len(results) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.Summary(results))
	}
	if groupErr != nil {
		return groupErr
	}
	return outcome(report.Tally(results))
}

// logDropped reports scoreboard events lost while the referee outran the
// display. Results are unaffected.
func (r *runner) logDropped() {
	if r.board == nil {
		return
	}
	if n := r.board.Dropped(); n > 0 {
		r.logger.Warn("scoreboard dropped events", "dropped", n)
	}
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	return h
}
