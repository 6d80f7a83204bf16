package ports

import "os/exec"

// EditorOpener opens a file in the user's preferred editor, used when a
// run ends with "manual edit required".
type EditorOpener interface {
	// Command returns an exec.Cmd for the editor, for integration with
	// bubbletea's ExecProcess.
	Command(path string) (*exec.Cmd, error)
}
