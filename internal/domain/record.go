package domain

import "time"

// BackupRecord is a timestamped pre-mutation copy of the build file,
// stored outside the project tree. Backups are never read back
// automatically; recovery is an explicit restore.
type BackupRecord struct {
	Path   string // backup file location
	Source string // file the snapshot was taken of
	Taken  time.Time
}

// PatchRun summarizes one patch invocation for the history index.
type PatchRun struct {
	File    string
	Changed bool
	Success bool
	Message string
	Failure string // empty on success
	States  map[string]FragmentState
	At      time.Time
}

// SetupInstructions is shown when the build template does not exist yet.
const SetupInstructions = "The build template was not found. Export or enable the " +
	"custom Gradle template in your project settings, then run the patch again."

// ManualEditInstructions is shown when a required anchor block is missing.
const ManualEditInstructions = "The template has no matching anchor block, so the " +
	"fragment cannot be placed automatically. Add the block (or restore the " +
	"template default) and run the patch again."

// ManualCleanupInstructions is shown when a stale fragment cannot be
// bounded safely for removal.
const ManualCleanupInstructions = "A previously injected fragment no longer matches " +
	"any known shape and was left untouched. Remove the marked lines by hand, " +
	"then run the patch again."
