package views

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gradmend/internal/adapters/tui/styles"
	"gradmend/internal/application/commands"
	"gradmend/internal/domain"
	"gradmend/internal/ports"
)

// StatusKeyMap defines key bindings for the status view
type StatusKeyMap struct {
	Patch   key.Binding
	Backups key.Binding
	Edit    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var StatusKeys = StatusKeyMap{
	Patch: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "patch"),
	),
	Backups: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "backups"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// StatusLoadedMsg carries a fresh classification of the build template
type StatusLoadedMsg struct {
	States      map[string]domain.FragmentState
	WouldChange bool
}

// StatusErrMsg indicates the template could not be classified
type StatusErrMsg struct {
	Err error
}

// StatusModel is the model for the fragment status view
type StatusModel struct {
	ViewState
	store    ports.BuildFileStore
	file     string
	versions domain.VersionSet

	states      map[string]domain.FragmentState
	wouldChange bool
	loaded      bool
}

// NewStatusModel creates a new status view model
func NewStatusModel(store ports.BuildFileStore, file string, versions domain.VersionSet) *StatusModel {
	return &StatusModel{
		store:    store,
		file:     file,
		versions: versions,
	}
}

// Init initializes the status view by loading fragment states
func (m *StatusModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload re-reads the template and reclassifies every fragment
func (m *StatusModel) Reload() tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewStatusCommand(m.store, m.file, m.versions)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return StatusErrMsg{Err: err}
		}
		return StatusLoadedMsg{States: result.States, WouldChange: result.WouldChange}
	}
}

// Update handles messages for the status view
func (m *StatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case StatusLoadedMsg:
		m.states = msg.States
		m.wouldChange = msg.WouldChange
		m.loaded = true
		return m, nil

	case StatusErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, StatusKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, StatusKeys.Patch):
			return m, func() tea.Msg { return SwitchToPatchMsg{} }
		case key.Matches(msg, StatusKeys.Backups):
			return m, func() tea.Msg { return SwitchToBackupsMsg{} }
		case key.Matches(msg, StatusKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		case key.Matches(msg, StatusKeys.Edit):
			return m, func() tea.Msg { return OpenEditorMsg{Path: m.file} }
		case key.Matches(msg, StatusKeys.Refresh):
			m.ClearMessage()
			return m, m.Reload()
		}
	}

	return m, nil
}

// View renders the status view
func (m *StatusModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Gradmend"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.file + " (" + m.versions.Name + ")"))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(styles.MutedText.Render("Loading..."))
		b.WriteString("\n")
	case m.states != nil:
		markers := make([]string, 0, len(m.states))
		for marker := range m.states {
			markers = append(markers, marker)
		}
		sort.Strings(markers)

		for _, marker := range markers {
			state := m.states[marker].String()
			b.WriteString("  ")
			b.WriteString(styles.FragmentMarker.Render(padRight(marker, 40)))
			b.WriteString(styles.StateStyle(state).Render(state))
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if m.wouldChange {
			b.WriteString(styles.StateStale.Render("A patch run would modify this file."))
		} else {
			b.WriteString(styles.Success.Render("All fragments current."))
		}
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusBar())

	return styles.App.Render(b.String())
}

func statusBar() string {
	var b strings.Builder
	for _, binding := range []key.Binding{
		StatusKeys.Patch,
		StatusKeys.Backups,
		StatusKeys.Edit,
		StatusKeys.Refresh,
		StatusKeys.Help,
		StatusKeys.Quit,
	} {
		b.WriteString(styles.HelpKey.Render(binding.Help().Key))
		b.WriteString(" ")
		b.WriteString(styles.HelpDesc.Render(binding.Help().Desc))
		b.WriteString("  ")
	}
	return b.String()
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
