package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gradmend/internal/adapters/editor"
	"gradmend/internal/adapters/tui/views"
	"gradmend/internal/domain"
	"gradmend/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewStatus ViewState = iota
	ViewPatch
	ViewBackups
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor *editor.Opener

	state   ViewState
	status  *views.StatusModel
	patch   *views.PatchModel
	backups *views.BackupsModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(store ports.BuildFileStore, backups ports.BackupStore, history ports.PatchHistory, ed *editor.Opener, file string, versions domain.VersionSet) *App {
	return &App{
		editor:  ed,
		state:   ViewStatus,
		status:  views.NewStatusModel(store, file, versions),
		patch:   views.NewPatchModel(store, backups, history, file, versions),
		backups: views.NewBackupsModel(backups, file),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.status.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.status.SetSize(msg.Width, msg.Height)
		a.patch.SetSize(msg.Width, msg.Height)
		a.backups.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToPatchMsg:
		a.state = ViewPatch
		return a, a.patch.Init()

	case views.SwitchToBackupsMsg:
		a.state = ViewBackups
		return a, a.backups.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToStatusMsg:
		a.state = ViewStatus
		return a, a.status.Reload()

	// Patch view messages
	case views.PatchSuccessMsg:
		a.state = ViewStatus
		a.patch.SetSessionPatched(true)
		a.status.SetMessage(msg.Message, false)
		return a, a.status.Reload()

	case views.PatchErrMsg:
		a.state = ViewStatus
		a.status.SetMessage(msg.Err.Error(), true)
		return a, a.status.Reload()

	// Backup view messages
	case views.RestoreSuccessMsg:
		a.backups.SetMessage(msg.Message, false)
		return a, a.backups.Reload()

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		// Reclassify after a manual edit session
		return a, a.status.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewStatus:
		_, cmd = a.status.Update(msg)
	case ViewPatch:
		_, cmd = a.patch.Update(msg)
	case ViewBackups:
		_, cmd = a.backups.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPatch:
		return a.patch.View()
	case ViewBackups:
		return a.backups.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.status.View()
	}
}
