package commands

import (
	"context"
	"fmt"

	"gradmend/internal/application"
	"gradmend/internal/ports"
)

// RestoreResult contains the result of restoring a backup
type RestoreResult struct {
	BackupPath string
	Message    string
}

// RestoreCommand copies a named backup over the build file. Restores are
// always explicit; the patcher never reads a backup back on its own.
type RestoreCommand struct {
	backups ports.BackupStore

	File       string
	BackupPath string
}

// NewRestoreCommand creates a new RestoreCommand
func NewRestoreCommand(backups ports.BackupStore, file, backupPath string) *RestoreCommand {
	return &RestoreCommand{backups: backups, File: file, BackupPath: backupPath}
}

// Validate checks if the restore operation is valid
func (c *RestoreCommand) Validate() error {
	if err := application.ValidateRequired("file", c.File); err != nil {
		return err
	}
	return application.ValidateRequired("backup", c.BackupPath)
}

// Execute runs the restore command
func (c *RestoreCommand) Execute(ctx context.Context) (*RestoreResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	records, err := c.backups.List(c.File)
	if err != nil {
		return nil, fmt.Errorf("%w: listing backups for %s: %v", application.ErrIO, c.File, err)
	}

	for _, rec := range records {
		if rec.Path == c.BackupPath {
			if err := c.backups.Restore(rec, c.File); err != nil {
				return nil, fmt.Errorf("%w: restoring %s: %v", application.ErrIO, rec.Path, err)
			}
			return &RestoreResult{
				BackupPath: rec.Path,
				Message:    fmt.Sprintf("Restored %s from %s", c.File, rec.Path),
			}, nil
		}
	}

	return nil, fmt.Errorf("no backup %s for %s", c.BackupPath, c.File)
}
