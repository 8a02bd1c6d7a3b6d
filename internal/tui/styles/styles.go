// Package styles holds the lipgloss palette shared by the scoreboard and the
// end-of-run summary.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue

	// Verdict colors
	VerdictPass    = lipgloss.Color("#10B981") // Green
	VerdictFail    = lipgloss.Color("#F87171") // Red
	VerdictAborted = lipgloss.Color("#FB923C") // Orange
	VerdictStopped = lipgloss.Color("#FBBF24") // Yellow
	VerdictRunning = lipgloss.Color("#60A5FA") // Blue

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1).
		PaddingBottom(1)

	// Content area
	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// Label/value rows
	Label = lipgloss.NewStyle().
		Foreground(MutedColor).
		Width(16)

	Value = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	// Ball position readout
	Ball = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	// Status badge styles
	StatusBadge = lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(1)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Error message
	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Success message
	SuccessMsg = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Warning message
	WarningMsg = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// VerdictColor returns the color for a verdict or a live game state
func VerdictColor(verdict string) lipgloss.Color {
	switch verdict {
	case "pass":
		return VerdictPass
	case "fail":
		return VerdictFail
	case "aborted":
		return VerdictAborted
	case "stopped":
		return VerdictStopped
	case "running":
		return VerdictRunning
	default:
		return MutedColor
	}
}

// VerdictIcon returns an icon for a verdict or a live game state
func VerdictIcon(verdict string) string {
	switch verdict {
	case "pass":
		return "✓"
	case "fail":
		return "✗"
	case "aborted":
		return "⚠"
	case "stopped":
		return "■"
	case "running":
		return "●"
	default:
		return "○"
	}
}

// Badge renders verdict as a colored badge.
func Badge(verdict string) string {
	return StatusBadge.
		Foreground(SurfaceColor).
		Background(VerdictColor(verdict)).
		Bold(true).
		Render(VerdictIcon(verdict) + " " + verdict)
}
