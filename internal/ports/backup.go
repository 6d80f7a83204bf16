package ports

import "gradmend/internal/domain"

// BackupStore snapshots the build file before mutation and manages the
// bounded backup history.
type BackupStore interface {
	// Snapshot copies the current file content to a timestamped backup
	// and prunes history beyond the retention count.
	Snapshot(path string) (domain.BackupRecord, error)

	// List returns backups for a file, newest first.
	List(path string) ([]domain.BackupRecord, error)

	// Restore copies a backup over the target path. Manual recovery
	// only; the patcher never restores on its own.
	Restore(rec domain.BackupRecord, path string) error

	// Keep returns the configured retention count.
	Keep() int
}
