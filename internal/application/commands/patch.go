package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gradmend/internal/application"
	"gradmend/internal/domain"
	"gradmend/internal/ports"
)

// PatchResult contains the result of a patch run
type PatchResult struct {
	Changed bool
	Message string
	States  map[string]domain.FragmentState
	Backup  *domain.BackupRecord
}

// PatchCommand makes the build template contain exactly one current copy
// of every required fragment. It sequences validate → sanitize → inject →
// atomic commit and is the only place allowed to abort a run.
type PatchCommand struct {
	store   ports.BuildFileStore
	backups ports.BackupStore
	history ports.PatchHistory // optional; recording is best effort

	File      string
	Versions  domain.VersionSet
	Fragments []domain.FragmentSpec
}

// NewPatchCommand creates a new PatchCommand over the default fragment set.
func NewPatchCommand(store ports.BuildFileStore, backups ports.BackupStore, history ports.PatchHistory, file string, versions domain.VersionSet) *PatchCommand {
	return &PatchCommand{
		store:     store,
		backups:   backups,
		history:   history,
		File:      file,
		Versions:  versions,
		Fragments: domain.DefaultFragments(),
	}
}

// Validate checks if the patch operation is valid
func (c *PatchCommand) Validate() error {
	if err := application.ValidateRequired("file", c.File); err != nil {
		return err
	}
	if err := application.ValidateVersionSet(c.Versions); err != nil {
		return err
	}
	if len(c.Fragments) == 0 {
		return &application.ValidationError{
			Field:   "fragments",
			Message: "at least one fragment is required",
		}
	}
	if err := domain.ValidateFragmentSet(c.Fragments); err != nil {
		return &application.ValidationError{
			Field:   "fragments",
			Message: err.Error(),
		}
	}
	return nil
}

// Execute runs the patch command. On failure the on-disk file equals its
// pre-run state; the structural check runs before the commit, never after.
func (c *PatchCommand) Execute(ctx context.Context) (*PatchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if !c.store.Exists(c.File) {
		return nil, c.fail(nil, fmt.Errorf("%w: %s", application.ErrFileMissing, c.File))
	}

	original, err := c.store.Read(c.File)
	if err != nil {
		return nil, c.fail(nil, fmt.Errorf("%w: reading %s: %v", application.ErrIO, c.File, err))
	}

	// Refuse to touch a template that is already structurally broken.
	if err := domain.CheckBalance(original); err != nil {
		return nil, c.fail(nil, fmt.Errorf("%w: template before patching: %v", application.ErrStructuralCorruption, err))
	}

	states := domain.Classify(original, c.Fragments, c.Versions)
	doc := original
	var backup *domain.BackupRecord
	removed, injected := 0, 0
	var warnings []string

	// Sanitize stale fragments. A snapshot must land before the first
	// destructive edit; failure here is fatal.
	for _, spec := range c.Fragments {
		if states[spec.Marker] != domain.StateStale {
			continue
		}
		if backup == nil {
			rec, err := c.backups.Snapshot(c.File)
			if err != nil {
				return nil, c.fail(states, fmt.Errorf("%w: before removing %s: %v", application.ErrBackupFailed, spec.Marker, err))
			}
			backup = &rec
		}
		doc, err = domain.Remove(doc, spec)
		if err != nil {
			return nil, c.fail(states, err)
		}
		removed++
	}

	// Inject whatever is still missing, honoring declared ordering. For
	// additive-only runs a failed snapshot downgrades to a warning.
	for _, spec := range domain.OrderForInjection(c.Fragments) {
		if strings.Contains(doc, spec.Marker) {
			continue
		}
		if backup == nil && c.store.Exists(c.File) {
			if rec, err := c.backups.Snapshot(c.File); err != nil {
				warnings = append(warnings, fmt.Sprintf("snapshot skipped: %v", err))
			} else {
				backup = &rec
			}
		}
		doc, err = domain.Insert(doc, spec, c.Versions)
		if err != nil {
			return nil, c.fail(states, err)
		}
		injected++
	}

	if doc == original {
		result := &PatchResult{
			Changed: false,
			Message: fmt.Sprintf("All fragments current in %s (%s); nothing to do.", c.File, c.Versions.Name),
			States:  states,
		}
		c.record(result, nil)
		return result, nil
	}

	if err := domain.CheckBalance(doc); err != nil {
		return nil, c.fail(states, fmt.Errorf("%w: patched content rejected, original left untouched: %v", application.ErrStructuralCorruption, err))
	}

	if err := c.store.Commit(c.File, doc); err != nil {
		return nil, c.fail(states, fmt.Errorf("%w: committing %s: %v", application.ErrIO, c.File, err))
	}

	result := &PatchResult{
		Changed: true,
		Message: c.summary(removed, injected, warnings),
		States:  domain.Classify(doc, c.Fragments, c.Versions),
		Backup:  backup,
	}
	c.record(result, nil)
	return result, nil
}

func (c *PatchCommand) summary(removed, injected int, warnings []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patched %s (%s):", c.File, c.Versions.Name)
	if removed > 0 {
		fmt.Fprintf(&b, " removed %d stale fragment(s),", removed)
	}
	fmt.Fprintf(&b, " injected %d fragment(s).", injected)
	for _, w := range warnings {
		b.WriteString(" Warning: ")
		b.WriteString(w)
		b.WriteString(".")
	}
	return b.String()
}

// fail records the failed run and returns the error with user guidance
// attached when manual action can resolve it.
func (c *PatchCommand) fail(states map[string]domain.FragmentState, err error) error {
	c.record(&PatchResult{States: states, Message: err.Error()}, err)
	kind := application.KindOf(err)
	if hint := application.Instructions(kind); hint != "" {
		return fmt.Errorf("%w\n%s", err, hint)
	}
	return err
}

// record writes the run to the history index, best effort.
func (c *PatchCommand) record(result *PatchResult, runErr error) {
	if c.history == nil {
		return
	}
	run := &domain.PatchRun{
		File:    c.File,
		Changed: result.Changed,
		Success: runErr == nil,
		Message: result.Message,
		States:  result.States,
		At:      time.Now(),
	}
	if runErr != nil {
		run.Failure = application.KindOf(runErr).String()
	}
	_ = c.history.Record(run)
}
