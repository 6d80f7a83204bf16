package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gradmend/internal/adapters/editor"
	"gradmend/internal/adapters/filesystem"
	"gradmend/internal/adapters/sqlite"
	"gradmend/internal/adapters/tui"
	"gradmend/internal/application"
	"gradmend/internal/config"
	"gradmend/internal/ports"
)

func main() {
	file := config.TemplatePath()
	versions, err := application.VersionSetByName(config.Toolchain())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize adapters
	store := filesystem.NewStore()
	backups := filesystem.NewBackupStore(config.BackupKeep())
	editorOpener := editor.NewOpener()

	var history ports.PatchHistory
	h := sqlite.NewHistory()
	if err := h.Open(file); err == nil {
		defer h.Close()
		history = h
	}

	// Create and run TUI app
	app := tui.NewApp(store, backups, history, editorOpener, file, versions)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
