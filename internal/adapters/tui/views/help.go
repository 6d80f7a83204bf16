package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gradmend/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToStatusMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Gradmend Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Gradle Template Patcher"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Status"))
	b.WriteString("\n")
	b.WriteString(helpLine("p", "Patch the template"))
	b.WriteString(helpLine("b", "Browse backups"))
	b.WriteString(helpLine("e", "Open template in $EDITOR"))
	b.WriteString(helpLine("r", "Refresh fragment states"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Backups"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("Enter / r", "Restore selected backup"))
	b.WriteString(helpLine("c", "Copy backup path"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Fragment States"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  correct : present in the selected version, left alone"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  stale   : present but outdated, replaced on patch"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  absent  : missing, injected at its anchor on patch"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
