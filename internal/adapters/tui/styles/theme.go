package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Fragment state styles
	StateCorrect = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StateStale = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StateAbsent = lipgloss.NewStyle().
			Foreground(Muted)

	FragmentMarker = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	Selected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)
)

// StateStyle returns the style for a fragment state name
func StateStyle(state string) lipgloss.Style {
	switch state {
	case "correct":
		return StateCorrect
	case "stale":
		return StateStale
	default:
		return StateAbsent
	}
}
