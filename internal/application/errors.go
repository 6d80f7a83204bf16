package application

import (
	"errors"
	"fmt"

	"gradmend/internal/domain"
)

// Sentinel errors for the failure taxonomy. Commands wrap these so callers
// can branch with errors.Is while still seeing the underlying cause.
var (
	// ErrFileMissing: the build template does not exist; the user must
	// export/enable it first.
	ErrFileMissing = errors.New("build template missing")
	// ErrBackupFailed: a snapshot could not be written before a
	// destructive step.
	ErrBackupFailed = errors.New("backup failed")
	// ErrStructuralCorruption: the patched content failed the brace
	// balance check; nothing was written.
	ErrStructuralCorruption = errors.New("structural corruption detected")
	// ErrIO: generic read/write/rename failure.
	ErrIO = errors.New("io failure")
)

// FailureKind classifies a failed run for callers that need to distinguish
// recoverable conditions (ask the user to act) from internal ones.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureFileMissing
	FailureAnchorNotFound
	FailurePatternNotFound
	FailureStructuralCorruption
	FailureBackup
	FailureIO
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureFileMissing:
		return "file-missing"
	case FailureAnchorNotFound:
		return "anchor-not-found"
	case FailurePatternNotFound:
		return "pattern-not-found"
	case FailureStructuralCorruption:
		return "structural-corruption"
	case FailureBackup:
		return "backup-failed"
	case FailureIO:
		return "io-failure"
	default:
		return "unknown"
	}
}

// Recoverable reports whether the user can fix the condition themselves
// (as opposed to an internal error worth reporting).
func (k FailureKind) Recoverable() bool {
	switch k {
	case FailureFileMissing, FailureAnchorNotFound, FailurePatternNotFound:
		return true
	default:
		return false
	}
}

// KindOf maps an error to its failure kind.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrFileMissing):
		return FailureFileMissing
	case errors.Is(err, domain.ErrAnchorNotFound):
		return FailureAnchorNotFound
	case errors.Is(err, domain.ErrPatternNotFound):
		return FailurePatternNotFound
	case errors.Is(err, ErrStructuralCorruption), errors.Is(err, domain.ErrUnbalanced):
		return FailureStructuralCorruption
	case errors.Is(err, ErrBackupFailed):
		return FailureBackup
	default:
		return FailureIO
	}
}

// Instructions returns presentation-ready guidance for a failure, or ""
// when no manual action helps.
func Instructions(kind FailureKind) string {
	switch kind {
	case FailureFileMissing:
		return domain.SetupInstructions
	case FailureAnchorNotFound:
		return domain.ManualEditInstructions
	case FailurePatternNotFound:
		return domain.ManualCleanupInstructions
	default:
		return ""
	}
}

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
