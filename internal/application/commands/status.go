package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gradmend/internal/application"
	"gradmend/internal/domain"
	"gradmend/internal/ports"
)

// StatusResult contains the result of a status check
type StatusResult struct {
	States      map[string]domain.FragmentState
	WouldChange bool
	Message     string
}

// StatusCommand classifies every fragment without writing anything.
type StatusCommand struct {
	store ports.BuildFileStore

	File      string
	Versions  domain.VersionSet
	Fragments []domain.FragmentSpec
}

// NewStatusCommand creates a new StatusCommand over the default fragment set.
func NewStatusCommand(store ports.BuildFileStore, file string, versions domain.VersionSet) *StatusCommand {
	return &StatusCommand{
		store:     store,
		File:      file,
		Versions:  versions,
		Fragments: domain.DefaultFragments(),
	}
}

// Validate checks if the status operation is valid
func (c *StatusCommand) Validate() error {
	if err := application.ValidateRequired("file", c.File); err != nil {
		return err
	}
	return application.ValidateVersionSet(c.Versions)
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context) (*StatusResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if !c.store.Exists(c.File) {
		return nil, fmt.Errorf("%w: %s", application.ErrFileMissing, c.File)
	}

	content, err := c.store.Read(c.File)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", application.ErrIO, c.File, err)
	}

	states := domain.Classify(content, c.Fragments, c.Versions)

	return &StatusResult{
		States:      states,
		WouldChange: domain.NeedsPatch(states),
		Message:     formatStates(c.File, c.Versions, states),
	}, nil
}

func formatStates(file string, vs domain.VersionSet, states map[string]domain.FragmentState) string {
	markers := make([]string, 0, len(states))
	for m := range states {
		markers = append(markers, m)
	}
	sort.Strings(markers)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s):\n", file, vs.Name)
	for _, m := range markers {
		fmt.Fprintf(&b, "  %-40s %s\n", m, states[m])
	}
	if domain.NeedsPatch(states) {
		b.WriteString("A patch run would modify this file.")
	} else {
		b.WriteString("All fragments current.")
	}
	return b.String()
}
