package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/schedfootball/internal/football"
	"github.com/Iron-Ham/schedfootball/internal/tui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return styles.Muted.Render("stopping...") + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render(fmt.Sprintf("sched football  game %d/%d", max(m.index, 1), m.runs)))
	b.WriteString("\n")

	state := "running"
	if m.board == nil && len(m.results) > 0 {
		state = string(m.results[len(m.results)-1].Verdict())
	}
	b.WriteString(row("status", m.spinnerOr(state)+" "+styles.Badge(state)))
	b.WriteString(row("phase", string(m.phase)))
	if m.runID != "" {
		b.WriteString(row("run", styles.Muted.Render(m.runID)))
	}
	b.WriteString(row("check-in", m.progress.ViewAs(m.checkinPercent())+
		styles.Muted.Render(fmt.Sprintf(" %d/%d", m.ready, teams*m.players))))
	b.WriteString(row("game clock", m.progress.ViewAs(m.measurePercent())+
		styles.Muted.Render(" "+m.gameTime.String())))
	b.WriteString(row("ball", m.ballView()))
	if len(m.checkedIn) > 0 {
		b.WriteString(row("on the field", strings.Join(m.checkedIn, ", ")))
	}
	if m.lastErr != "" {
		b.WriteString(row("error", styles.ErrorMsg.Render(m.lastErr)))
	}

	if len(m.results) > 0 {
		b.WriteString("\n")
		badges := make([]string, 0, len(m.results))
		for _, res := range m.results {
			badges = append(badges, styles.Badge(string(res.Verdict())))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, badges...))
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpBar.Render(styles.HelpKey.Render("q") + " stop"))
	return styles.ContentBox.Render(b.String()) + "\n"
}

func (m Model) spinnerOr(state string) string {
	if state == "running" {
		return m.spinner.View()
	}
	return " "
}

func (m Model) ballView() string {
	ball := styles.Ball.Render(fmt.Sprintf("%d", m.ball))
	switch {
	case m.phase != football.PhaseMeasuring && m.phase != football.PhaseScoring && m.phase != football.PhaseDone:
		return ball
	case m.ball == 0:
		return ball + " " + styles.SuccessMsg.Render("held")
	default:
		return ball + " " + styles.ErrorMsg.Render("offense is moving")
	}
}

func row(label, value string) string {
	return styles.Label.Render(label) + value + "\n"
}
