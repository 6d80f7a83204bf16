package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gradmend/internal/adapters/tui/styles"
	"gradmend/internal/application/commands"
	"gradmend/internal/domain"
	"gradmend/internal/ports"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// PatchSuccessMsg indicates a completed patch run
type PatchSuccessMsg struct {
	Message string
	Changed bool
}

// PatchErrMsg indicates a failed patch run
type PatchErrMsg struct {
	Err error
}

// PatchModel is the model for the patch confirmation view
type PatchModel struct {
	ViewState
	store   ports.BuildFileStore
	backups ports.BackupStore
	history ports.PatchHistory

	file     string
	versions domain.VersionSet
	Keys     ConfirmKeyMap

	running        bool
	sessionPatched bool
}

// NewPatchModel creates a new patch confirmation view model
func NewPatchModel(store ports.BuildFileStore, backups ports.BackupStore, history ports.PatchHistory, file string, versions domain.VersionSet) *PatchModel {
	return &PatchModel{
		store:    store,
		backups:  backups,
		history:  history,
		file:     file,
		versions: versions,
		Keys:     DefaultConfirmKeys,
	}
}

// Init initializes the patch view
func (m *PatchModel) Init() tea.Cmd {
	m.running = false
	return nil
}

// SetSessionPatched marks that a patch already succeeded in this process.
// The flag lives and dies with the session; the file itself stays the
// source of truth.
func (m *PatchModel) SetSessionPatched(v bool) {
	m.sessionPatched = v
}

// Update handles messages for the patch view
func (m *PatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.running {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToStatusMsg{} }
		case key.Matches(msg, m.Keys.Confirm):
			m.running = true
			return m, m.doPatch()
		}
	}

	return m, nil
}

func (m *PatchModel) doPatch() tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewPatchCommand(m.store, m.backups, m.history, m.file, m.versions)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return PatchErrMsg{Err: err}
		}
		return PatchSuccessMsg{Message: result.Message, Changed: result.Changed}
	}
}

// View renders the patch confirmation view
func (m *PatchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Patch Confirmation"))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Stale fragments are removed after a backup snapshot; missing"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("fragments are injected at their anchors. The write is atomic."))
	b.WriteString("\n\n")

	b.WriteString("  File:      " + styles.FragmentMarker.Render(m.file))
	b.WriteString("\n")
	b.WriteString("  Toolchain: " + styles.FragmentMarker.Render(m.versions.Name))
	b.WriteString("\n\n")

	if m.sessionPatched && !m.running {
		b.WriteString(styles.MutedText.Render("Already patched in this session; another run is safe and will report no change."))
		b.WriteString("\n\n")
	}

	if m.running {
		b.WriteString(styles.MutedText.Render("Patching..."))
	} else {
		b.WriteString("Proceed with patch? ")
		b.WriteString(styles.HelpKey.Render("y"))
		b.WriteString(styles.HelpDesc.Render(" to confirm, "))
		b.WriteString(styles.HelpKey.Render("n"))
		b.WriteString(styles.HelpDesc.Render(" to cancel"))
	}

	return styles.App.Render(b.String())
}
