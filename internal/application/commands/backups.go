package commands

import (
	"context"
	"fmt"

	"gradmend/internal/application"
	"gradmend/internal/domain"
	"gradmend/internal/ports"
)

// ListBackupsResult contains the backups found for a file
type ListBackupsResult struct {
	Records []domain.BackupRecord
	Message string
}

// ListBackupsCommand lists the retained snapshots for a build file.
type ListBackupsCommand struct {
	backups ports.BackupStore
	File    string
}

// NewListBackupsCommand creates a new ListBackupsCommand
func NewListBackupsCommand(backups ports.BackupStore, file string) *ListBackupsCommand {
	return &ListBackupsCommand{backups: backups, File: file}
}

// Validate checks if the list operation is valid
func (c *ListBackupsCommand) Validate() error {
	return application.ValidateRequired("file", c.File)
}

// Execute runs the list backups command
func (c *ListBackupsCommand) Execute(ctx context.Context) (*ListBackupsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	records, err := c.backups.List(c.File)
	if err != nil {
		return nil, fmt.Errorf("%w: listing backups for %s: %v", application.ErrIO, c.File, err)
	}

	msg := fmt.Sprintf("%d backup(s) for %s (retention %d)", len(records), c.File, c.backups.Keep())
	return &ListBackupsResult{Records: records, Message: msg}, nil
}
