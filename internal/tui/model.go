package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/schedfootball/internal/event"
	"github.com/Iron-Ham/schedfootball/internal/football"
	"github.com/Iron-Ham/schedfootball/internal/tui/styles"
)

// teams is the number of worker teams put on the field each game.
const teams = 5

// Model is the bubbletea model of the scoreboard.
type Model struct {
	runs    int
	refresh time.Duration
	onQuit  func()

	width    int
	spinner  spinner.Model
	progress progress.Model

	// Current game
	index        int
	runID        string
	players      int
	gameTime     time.Duration
	board        Scoreboard
	phase        football.Phase
	ready        int64
	ball         uint64
	checkedIn    []string
	measureStart time.Time
	now          time.Time
	lastErr      string

	results  []football.Result
	done     bool
	quitting bool
}

// NewModel creates a scoreboard for runs games. onQuit is called when the
// user asks to leave; it should stop the games.
func NewModel(runs int, refresh time.Duration, onQuit func()) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Primary

	return Model{
		runs:     runs,
		refresh:  refresh,
		onQuit:   onQuit,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		phase:    football.PhaseInit,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(max(msg.Width-24, 10), 60)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.now = time.Time(msg)
		m.sample()
		return m, m.tick()

	case gameMsg:
		m.index = msg.index
		m.runID = msg.runID
		m.gameTime = msg.gameTime
		m.players = 0
		m.board = nil
		m.phase = football.PhaseInit
		m.ready, m.ball = 0, 0
		m.checkedIn = nil
		m.measureStart = time.Time{}
		m.lastErr = ""
		return m, nil

	case boardMsg:
		m.players = msg.players
		m.board = msg.board
		m.sample()
		return m, nil

	case eventMsg:
		m.handleEvent(msg.event)
		return m, nil

	case resultMsg:
		m.results = append(m.results, msg.result)
		m.ball = msg.result.FinalBallPos
		m.phase = football.PhaseDone
		m.board = nil
		return m, nil

	case doneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// sample copies the live counters from the scoreboard.
func (m *Model) sample() {
	if m.board == nil {
		return
	}
	m.ready = m.board.PlayersReady()
	if m.phase == football.PhaseMeasuring {
		m.ball = m.board.BallPos()
	}
}

func (m *Model) handleEvent(e event.Event) {
	switch e := e.(type) {
	case event.PhaseChangeEvent:
		if e.RunID != m.runID {
			return
		}
		m.phase = football.Phase(e.Current)
		if m.phase == football.PhaseMeasuring {
			m.measureStart = e.Timestamp()
			m.ball = 0
		}
	case event.TeamCheckedInEvent:
		if e.RunID != m.runID {
			return
		}
		m.checkedIn = append(m.checkedIn, e.Team)
		m.players = e.Players
		m.ready = max(m.ready, e.PlayersReady)
	case event.GameAbortedEvent:
		if e.RunID != m.runID {
			return
		}
		m.lastErr = e.Reason
	case event.GameFinishedEvent:
		if e.RunID != m.runID {
			return
		}
		m.ball = e.FinalBallPos
	}
}

// checkinPercent is the share of all players that have checked in.
func (m Model) checkinPercent() float64 {
	want := int64(teams * m.players)
	if want == 0 {
		return 0
	}
	return min(float64(m.ready)/float64(want), 1)
}

// measurePercent is the share of the game time that has elapsed.
func (m Model) measurePercent() float64 {
	switch m.phase {
	case football.PhaseScoring, football.PhaseDone:
		return 1
	case football.PhaseMeasuring:
	default:
		return 0
	}
	if m.gameTime <= 0 || m.measureStart.IsZero() || m.now.Before(m.measureStart) {
		return 0
	}
	return min(float64(m.now.Sub(m.measureStart))/float64(m.gameTime), 1)
}

// Results returns the results received so far.
func (m Model) Results() []football.Result {
	return m.results
}
