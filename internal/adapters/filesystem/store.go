package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gradmend/internal/ports"
)

// Store implements ports.BuildFileStore on the local filesystem.
type Store struct{}

// Ensure Store implements BuildFileStore
var _ ports.BuildFileStore = (*Store)(nil)

// NewStore creates a new filesystem store
func NewStore() *Store {
	return &Store{}
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// Read returns the file content
func (s *Store) Read(path string) (string, error) {
	b, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Exists reports whether the file is present
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(ExpandHome(path))
	return err == nil && !info.IsDir()
}

// Commit writes content to a sibling temp file and renames it into place,
// so a reader never observes a partially written file. On any failure the
// original file is left intact and the temp file is removed.
func (s *Store) Commit(path string, content string) error {
	path = ExpandHome(path)
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp := filepath.Join(dir, "."+base+".tmp")
	if err := os.WriteFile(tmp, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		if runtime.GOOS == "windows" {
			// Windows cannot replace a locked destination; retry a few
			// times with delete-then-rename.
			last := err
			for i := 0; i < 5; i++ {
				if _, statErr := os.Stat(path); statErr == nil {
					_ = os.Remove(path)
				}
				if rerr := os.Rename(tmp, path); rerr == nil {
					return nil
				} else {
					last = rerr
				}
				time.Sleep(50 * time.Millisecond)
			}
			_ = os.Remove(tmp)
			return fmt.Errorf("failed to replace %s: %w", path, last)
		}
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
