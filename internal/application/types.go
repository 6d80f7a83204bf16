package application

import "gradmend/internal/domain"

// Re-export fragment state for use by adapters
type FragmentState = domain.FragmentState

const (
	StateAbsent  = domain.StateAbsent
	StateCorrect = domain.StateCorrect
	StateStale   = domain.StateStale
)

// Re-export domain types for use by adapters
type (
	FragmentSpec = domain.FragmentSpec
	VersionSet   = domain.VersionSet
	BackupRecord = domain.BackupRecord
	PatchRun     = domain.PatchRun
)

// VersionSetByName resolves a toolchain name to its version bundle.
func VersionSetByName(name string) (VersionSet, error) {
	return domain.VersionSetByName(name)
}

// DefaultFragments returns the fragment generation this build ships with.
func DefaultFragments() []FragmentSpec {
	return domain.DefaultFragments()
}
