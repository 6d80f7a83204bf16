package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gradmend/internal/domain"
	"gradmend/internal/ports"
)

const backupStampLayout = "20060102-150405.000000000"

// BackupStore implements ports.BackupStore. Snapshots live outside the
// project tree, under the XDG data directory, in a per-file subdirectory
// keyed by a hash of the source path.
type BackupStore struct {
	root string
	keep int
}

// Ensure BackupStore implements the port
var _ ports.BackupStore = (*BackupStore)(nil)

// NewBackupStore creates a backup store with the given retention count.
func NewBackupStore(keep int) *BackupStore {
	return &BackupStore{root: backupRoot(), keep: keep}
}

// NewBackupStoreAt creates a backup store rooted at a specific directory,
// used by tests.
func NewBackupStoreAt(root string, keep int) *BackupStore {
	return &BackupStore{root: root, keep: keep}
}

// backupRoot returns the default backup directory
func backupRoot() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gradmend", "backups")
}

// hashPath returns a short stable hash of a source path
func hashPath(path string) string {
	h := sha256.Sum256([]byte(path))
	return hex.EncodeToString(h[:8])
}

func (b *BackupStore) dirFor(path string) string {
	return filepath.Join(b.root, hashPath(ExpandHome(path)))
}

// Keep returns the configured retention count
func (b *BackupStore) Keep() int {
	return b.keep
}

// Snapshot copies the current file content to a timestamped backup, then
// prunes history beyond the retention count, oldest first.
func (b *BackupStore) Snapshot(path string) (domain.BackupRecord, error) {
	src := ExpandHome(path)
	content, err := os.ReadFile(src)
	if err != nil {
		return domain.BackupRecord{}, fmt.Errorf("failed to read %s: %w", src, err)
	}

	dir := b.dirFor(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.BackupRecord{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := timeNow()
	name := fmt.Sprintf("%s.%s.bak", filepath.Base(src), now.Format(backupStampLayout))
	dst := filepath.Join(dir, name)
	if err := os.WriteFile(dst, content, 0600); err != nil {
		return domain.BackupRecord{}, fmt.Errorf("failed to write backup: %w", err)
	}

	if err := b.prune(path); err != nil {
		return domain.BackupRecord{}, err
	}

	return domain.BackupRecord{Path: dst, Source: src, Taken: now}, nil
}

// List returns backups for a file, newest first.
func (b *BackupStore) List(path string) ([]domain.BackupRecord, error) {
	dir := b.dirFor(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	src := ExpandHome(path)
	base := filepath.Base(src)
	var records []domain.BackupRecord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, base+".") || !strings.HasSuffix(name, ".bak") {
			continue
		}
		rec := domain.BackupRecord{
			Path:   filepath.Join(dir, name),
			Source: src,
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, base+"."), ".bak")
		if t, err := parseStamp(stamp); err == nil {
			rec.Taken = t
		}
		records = append(records, rec)
	}

	// Stamp names are zero-padded, so lexicographic order is
	// chronological.
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path > records[j].Path
	})

	return records, nil
}

// Restore copies a backup over the target path atomically.
func (b *BackupStore) Restore(rec domain.BackupRecord, path string) error {
	content, err := os.ReadFile(rec.Path)
	if err != nil {
		return fmt.Errorf("failed to read backup %s: %w", rec.Path, err)
	}
	return NewStore().Commit(path, string(content))
}

// prune deletes backups beyond the retention count, oldest first.
func (b *BackupStore) prune(path string) error {
	records, err := b.List(path)
	if err != nil {
		return err
	}
	for _, rec := range records[minInt(b.keep, len(records)):] {
		if err := os.Remove(rec.Path); err != nil {
			return fmt.Errorf("failed to prune backup %s: %w", rec.Path, err)
		}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// timeNow is swapped in tests to fix snapshot stamps.
var timeNow = time.Now

func parseStamp(stamp string) (time.Time, error) {
	return time.ParseInLocation(backupStampLayout, stamp, time.Local)
}
