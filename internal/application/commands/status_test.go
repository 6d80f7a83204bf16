package commands

import (
	"context"
	"strings"
	"testing"

	"gradmend/internal/adapters/filesystem"
	"gradmend/internal/application"
	"gradmend/internal/domain"
)

func TestStatus_BareTemplate(t *testing.T) {
	file := writeTemplate(t, bareTemplate)
	status := NewStatusCommand(filesystem.NewStore(), file, domain.ModernVersions)

	result, err := status.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.WouldChange {
		t.Error("bare template must report a pending change")
	}
	for marker, state := range result.States {
		if state != domain.StateAbsent {
			t.Errorf("%s: expected absent, got %s", marker, state)
		}
	}
	if !strings.Contains(result.Message, "would modify") {
		t.Errorf("message should mention pending change: %s", result.Message)
	}
}

func TestStatus_NeverWrites(t *testing.T) {
	file := writeTemplate(t, legacyTemplate)
	status := NewStatusCommand(filesystem.NewStore(), file, domain.ModernVersions)

	if _, err := status.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if readFile(t, file) != legacyTemplate {
		t.Error("status modified the file")
	}
}

func TestStatus_AfterPatchIsClean(t *testing.T) {
	file := writeTemplate(t, bareTemplate)
	patch := newPatch(t, file)
	if _, err := patch.Execute(context.Background()); err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	status := NewStatusCommand(filesystem.NewStore(), file, domain.ModernVersions)
	result, err := status.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.WouldChange {
		t.Error("patched file must not report a pending change")
	}
	if !strings.Contains(result.Message, "All fragments current") {
		t.Errorf("unexpected message: %s", result.Message)
	}
}

func TestStatus_MissingFile(t *testing.T) {
	status := NewStatusCommand(filesystem.NewStore(), "/nonexistent/mainTemplate.gradle", domain.ModernVersions)

	_, err := status.Execute(context.Background())
	if application.KindOf(err) != application.FailureFileMissing {
		t.Errorf("expected file-missing failure, got %v", err)
	}
}
