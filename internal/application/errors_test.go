package application

import (
	"errors"
	"fmt"
	"testing"

	"gradmend/internal/domain"
)

func TestKindOf_Taxonomy(t *testing.T) {
	tests := []struct {
		err  error
		want FailureKind
	}{
		{nil, FailureNone},
		{ErrFileMissing, FailureFileMissing},
		{fmt.Errorf("%w: ./mainTemplate.gradle", ErrFileMissing), FailureFileMissing},
		{domain.ErrAnchorNotFound, FailureAnchorNotFound},
		{domain.ErrPatternNotFound, FailurePatternNotFound},
		{ErrStructuralCorruption, FailureStructuralCorruption},
		{domain.ErrUnbalanced, FailureStructuralCorruption},
		{ErrBackupFailed, FailureBackup},
		{errors.New("disk on fire"), FailureIO},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestFailureKind_Recoverable(t *testing.T) {
	recoverable := []FailureKind{FailureFileMissing, FailureAnchorNotFound, FailurePatternNotFound}
	for _, k := range recoverable {
		if !k.Recoverable() {
			t.Errorf("%s should be recoverable", k)
		}
	}

	internal := []FailureKind{FailureStructuralCorruption, FailureBackup, FailureIO}
	for _, k := range internal {
		if k.Recoverable() {
			t.Errorf("%s should not be recoverable", k)
		}
	}
}

func TestInstructions_RecoverableKindsHaveGuidance(t *testing.T) {
	for _, k := range []FailureKind{FailureFileMissing, FailureAnchorNotFound, FailurePatternNotFound} {
		if Instructions(k) == "" {
			t.Errorf("%s must carry user guidance", k)
		}
	}
	if Instructions(FailureIO) != "" {
		t.Error("internal failures carry no guidance")
	}
}
