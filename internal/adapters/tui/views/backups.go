package views

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gradmend/internal/adapters/tui/styles"
	"gradmend/internal/application/commands"
	"gradmend/internal/domain"
	"gradmend/internal/ports"
)

// BackupsKeyMap defines key bindings for the backups view
type BackupsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Restore key.Binding
	Copy    key.Binding
	Back    key.Binding
}

var BackupsKeys = BackupsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Restore: key.NewBinding(
		key.WithKeys("enter", "r"),
		key.WithHelp("enter/r", "restore"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy path"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc/q", "back"),
	),
}

// BackupsLoadedMsg carries the retained snapshots for the template
type BackupsLoadedMsg struct {
	Records []domain.BackupRecord
}

// BackupsErrMsg indicates backups could not be listed or restored
type BackupsErrMsg struct {
	Err error
}

// RestoreSuccessMsg indicates a completed restore
type RestoreSuccessMsg struct {
	Message string
}

// BackupsModel is the model for the backup browser view
type BackupsModel struct {
	ViewState
	backups ports.BackupStore
	file    string

	records   []domain.BackupRecord
	cursor    int
	confirm   bool
	restoring bool
}

// NewBackupsModel creates a new backups view model
func NewBackupsModel(backups ports.BackupStore, file string) *BackupsModel {
	return &BackupsModel{backups: backups, file: file}
}

// Init initializes the backups view by loading the snapshot list
func (m *BackupsModel) Init() tea.Cmd {
	m.cursor = 0
	m.confirm = false
	m.restoring = false
	return m.Reload()
}

// Reload re-reads the backup directory
func (m *BackupsModel) Reload() tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewListBackupsCommand(m.backups, m.file)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return BackupsErrMsg{Err: err}
		}
		return BackupsLoadedMsg{Records: result.Records}
	}
}

// Update handles messages for the backups view
func (m *BackupsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case BackupsLoadedMsg:
		m.records = msg.Records
		m.restoring = false
		if m.cursor >= len(m.records) {
			m.cursor = 0
		}
		return m, nil

	case BackupsErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		m.restoring = false
		return m, nil

	case tea.KeyMsg:
		if m.restoring {
			return m, nil
		}
		if m.confirm {
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m *BackupsModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, BackupsKeys.Back):
		return m, func() tea.Msg { return SwitchToStatusMsg{} }

	case key.Matches(msg, BackupsKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, BackupsKeys.Down):
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}

	case key.Matches(msg, BackupsKeys.Copy):
		if m.cursor < len(m.records) {
			clipboard.WriteAll(m.records[m.cursor].Path)
			m.SetMessage("Copied "+filepath.Base(m.records[m.cursor].Path), false)
		}

	case key.Matches(msg, BackupsKeys.Restore):
		if m.cursor < len(m.records) {
			m.confirm = true
		}
	}

	return m, nil
}

func (m *BackupsModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultConfirmKeys.Cancel):
		m.confirm = false
	case key.Matches(msg, DefaultConfirmKeys.Confirm):
		m.confirm = false
		m.restoring = true
		return m, m.doRestore(m.records[m.cursor])
	}
	return m, nil
}

func (m *BackupsModel) doRestore(rec domain.BackupRecord) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewRestoreCommand(m.backups, m.file, rec.Path)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return BackupsErrMsg{Err: err}
		}
		return RestoreSuccessMsg{Message: result.Message}
	}
}

// View renders the backups view
func (m *BackupsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Backups"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.file))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		b.WriteString(styles.MutedText.Render("No backups yet. Snapshots are taken before destructive edits."))
		b.WriteString("\n")
	}

	for i, rec := range m.records {
		line := rec.Taken.Format("2006-01-02 15:04:05") + "  " + filepath.Base(rec.Path)
		if i == m.cursor {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")

	switch {
	case m.restoring:
		b.WriteString(styles.MutedText.Render("Restoring..."))
		b.WriteString("\n")
	case m.confirm:
		b.WriteString("Overwrite " + m.file + " with this backup? ")
		b.WriteString(styles.HelpKey.Render("y"))
		b.WriteString(styles.HelpDesc.Render(" to confirm, "))
		b.WriteString(styles.HelpKey.Render("n"))
		b.WriteString(styles.HelpDesc.Render(" to cancel"))
		b.WriteString("\n")
	}

	if m.Message != "" {
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(backupsBar())

	return styles.App.Render(b.String())
}

func backupsBar() string {
	var b strings.Builder
	for _, binding := range []key.Binding{
		BackupsKeys.Up,
		BackupsKeys.Down,
		BackupsKeys.Restore,
		BackupsKeys.Copy,
		BackupsKeys.Back,
	} {
		b.WriteString(styles.HelpKey.Render(binding.Help().Key))
		b.WriteString(" ")
		b.WriteString(styles.HelpDesc.Render(binding.Help().Desc))
		b.WriteString("  ")
	}
	return b.String()
}
