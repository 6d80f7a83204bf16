package editor

import (
	"fmt"
	"os"
	"os/exec"

	"gradmend/internal/ports"
)

// Opener implements ports.EditorOpener. It is used for the "manual edit
// required" follow-up when a run ends with a missing anchor or an
// unrecognizable stale fragment.
type Opener struct{}

// Ensure Opener implements the port
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{}
}

// Command returns an exec.Cmd for opening a file in the editor.
// This is useful for integrating with bubbletea's ExecProcess.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano", "code"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
