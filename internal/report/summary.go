package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/schedfootball/internal/football"
	"github.com/Iron-Ham/schedfootball/internal/tui/styles"
)

// Summary renders results as a boxed table, one line per run, followed by
// the totals.
func Summary(results []football.Result) string {
	return Render(New(Meta{}, results))
}

// Render draws r the way Summary does, for reports read back from disk.
func Render(r *Report) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("sched football"))
	b.WriteString("\n")

	for _, run := range r.Runs {
		line := fmt.Sprintf("#%-3d %s  ball %-10d %s/%s  %d players  %s",
			run.Index,
			styles.Badge(run.Verdict),
			run.FinalBallPos,
			run.Lock,
			run.IndexMapping,
			run.Players,
			run.GameTime,
		)
		b.WriteString(line)
		b.WriteString("\n")
		if run.Error != "" {
			b.WriteString("     ")
			b.WriteString(styles.ErrorMsg.Render(run.Error))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(totalsLine(r.Totals))

	return styles.ContentBox.Render(b.String())
}

func totalsLine(t Totals) string {
	parts := []string{
		styles.Muted.Render(fmt.Sprintf("%d runs", t.Runs)),
		count(t.Passed, "passed", styles.VerdictPass),
		count(t.Failed, "failed", styles.VerdictFail),
		count(t.Aborted, "aborted", styles.VerdictAborted),
		count(t.Stopped, "stopped", styles.VerdictStopped),
	}
	line := strings.Join(parts, styles.Muted.Render(" · "))
	if t.OK() {
		return line + "  " + styles.SuccessMsg.Render("invariant held")
	}
	return line + "  " + styles.ErrorMsg.Render("invariant not demonstrated")
}

func count(n int, label string, color lipgloss.Color) string {
	style := styles.Muted
	if n > 0 {
		style = lipgloss.NewStyle().Foreground(color).Bold(true)
	}
	return style.Render(fmt.Sprintf("%d %s", n, label))
}
