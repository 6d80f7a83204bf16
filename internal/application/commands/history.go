package commands

import (
	"context"
	"fmt"

	"gradmend/internal/application"
	"gradmend/internal/domain"
	"gradmend/internal/ports"
)

// HistoryResult contains recent patch runs
type HistoryResult struct {
	Runs    []domain.PatchRun
	Message string
}

// HistoryCommand reads recent runs from the patch history index.
type HistoryCommand struct {
	history ports.PatchHistory

	File  string
	Limit int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(history ports.PatchHistory, file string, limit int) *HistoryCommand {
	return &HistoryCommand{history: history, File: file, Limit: limit}
}

// Validate checks if the history query is valid
func (c *HistoryCommand) Validate() error {
	if err := application.ValidateRequired("file", c.File); err != nil {
		return err
	}
	if c.Limit <= 0 {
		return &application.ValidationError{
			Field:   "limit",
			Message: "limit must be positive",
		}
	}
	return nil
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) (*HistoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	runs, err := c.history.Recent(c.File, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: reading history for %s: %v", application.ErrIO, c.File, err)
	}

	return &HistoryResult{
		Runs:    runs,
		Message: fmt.Sprintf("%d recorded run(s) for %s", len(runs), c.File),
	}, nil
}
