package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gradmend/internal/adapters/filesystem"
	"gradmend/internal/application"
	"gradmend/internal/domain"
)

const bareTemplate = `apply plugin: 'com.android.application'

dependencies {
    implementation fileTree(dir: 'libs', include: ['*.jar'])
}
`

const legacyTemplate = `apply plugin: 'com.android.application'

dependencies {
    // gradmend: webview-deps
    implementation 'androidx.core:core:1.6.0'
    implementation 'androidx.annotation:annotation:1.2.0'
    implementation 'androidx.webkit:webkit:1.4.0'
    implementation 'androidx.browser:browser:1.3.0'
    implementation fileTree(dir: 'libs', include: ['*.jar'])
}
`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mainTemplate.gradle")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing template: %v", err)
	}
	return path
}

func newPatch(t *testing.T, file string) *PatchCommand {
	t.Helper()
	store := filesystem.NewStore()
	backups := filesystem.NewBackupStoreAt(t.TempDir(), 10)
	return NewPatchCommand(store, backups, nil, file, domain.ModernVersions)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(b)
}

func TestPatch_InjectsIntoBareTemplate(t *testing.T) {
	file := writeTemplate(t, bareTemplate)
	patch := newPatch(t, file)

	result, err := patch.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.Changed {
		t.Error("expected a change on a bare template")
	}
	for marker, state := range result.States {
		if state != domain.StateCorrect {
			t.Errorf("%s: expected correct after patch, got %s", marker, state)
		}
	}

	content := readFile(t, file)
	if !strings.Contains(content, "implementation 'androidx.webkit:webkit:1.12.1'") {
		t.Errorf("dependency lines missing:\n%s", content)
	}
	if !strings.Contains(content, "force 'androidx.core:core:1.15.0'") {
		t.Errorf("resolution strategy missing:\n%s", content)
	}
	if !strings.Contains(content, "implementation fileTree(dir: 'libs', include: ['*.jar'])") {
		t.Errorf("pre-existing content lost:\n%s", content)
	}
	if err := domain.CheckBalance(content); err != nil {
		t.Errorf("patched file unbalanced: %v", err)
	}
}

func TestPatch_SecondRunIsNoOp(t *testing.T) {
	file := writeTemplate(t, bareTemplate)
	patch := newPatch(t, file)

	if _, err := patch.Execute(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	afterFirst := readFile(t, file)

	result, err := patch.Execute(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if result.Changed {
		t.Error("second run must not change anything")
	}
	if readFile(t, file) != afterFirst {
		t.Error("second run altered file bytes")
	}
}

func TestPatch_ReplacesStaleVersions(t *testing.T) {
	file := writeTemplate(t, legacyTemplate)
	patch := newPatch(t, file)

	result, err := patch.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.Changed {
		t.Error("expected a change on stale versions")
	}

	content := readFile(t, file)
	if strings.Contains(content, "androidx.core:core:1.6.0") {
		t.Errorf("stale version survived:\n%s", content)
	}
	if !strings.Contains(content, "androidx.core:core:1.15.0") {
		t.Errorf("current version missing:\n%s", content)
	}
	if strings.Count(content, "// gradmend: webview-deps") != 1 {
		t.Errorf("expected exactly one marker:\n%s", content)
	}
	if !strings.Contains(content, "implementation fileTree(dir: 'libs', include: ['*.jar'])") {
		t.Errorf("foreign content lost:\n%s", content)
	}
}

func TestPatch_BackupTakenBeforeDestructiveEdit(t *testing.T) {
	file := writeTemplate(t, legacyTemplate)
	store := filesystem.NewStore()
	backups := filesystem.NewBackupStoreAt(t.TempDir(), 10)
	patch := NewPatchCommand(store, backups, nil, file, domain.ModernVersions)

	result, err := patch.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Backup == nil {
		t.Fatal("expected a backup record for a destructive run")
	}
	if readFile(t, result.Backup.Path) != legacyTemplate {
		t.Error("backup does not hold the pre-run content")
	}

	records, err := backups.List(file)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected one backup, got %d", len(records))
	}
}

func TestPatch_CurrentFileLeftUntouched(t *testing.T) {
	file := writeTemplate(t, bareTemplate)
	patch := newPatch(t, file)
	if _, err := patch.Execute(context.Background()); err != nil {
		t.Fatalf("setup run failed: %v", err)
	}
	before := readFile(t, file)
	info, _ := os.Stat(file)
	beforeMod := info.ModTime()

	result, err := patch.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Changed {
		t.Error("no-op run reported a change")
	}
	if readFile(t, file) != before {
		t.Error("no-op run rewrote the file")
	}
	info, _ = os.Stat(file)
	if !info.ModTime().Equal(beforeMod) {
		t.Error("no-op run touched the file")
	}
}

func TestPatch_MissingFile(t *testing.T) {
	patch := newPatch(t, filepath.Join(t.TempDir(), "nope.gradle"))

	_, err := patch.Execute(context.Background())
	if application.KindOf(err) != application.FailureFileMissing {
		t.Fatalf("expected file-missing failure, got %v", err)
	}
	if !strings.Contains(err.Error(), domain.SetupInstructions) {
		t.Error("expected setup guidance attached to the error")
	}
}

func TestPatch_MissingAnchorAbortsWholeRun(t *testing.T) {
	// No dependencies block at all: injection must fail and leave the
	// file byte-identical, including the end-of-file fragment.
	original := "apply plugin: 'com.android.application'\n"
	file := writeTemplate(t, original)
	patch := newPatch(t, file)

	_, err := patch.Execute(context.Background())
	if application.KindOf(err) != application.FailureAnchorNotFound {
		t.Fatalf("expected anchor-not-found failure, got %v", err)
	}
	if readFile(t, file) != original {
		t.Error("failed run modified the file")
	}
	if !strings.Contains(err.Error(), domain.ManualEditInstructions) {
		t.Error("expected manual-edit guidance attached to the error")
	}
}

func TestPatch_CorruptTemplateRefused(t *testing.T) {
	original := "dependencies {\n    implementation 'a:b:1.0'\n"
	file := writeTemplate(t, original)
	patch := newPatch(t, file)

	_, err := patch.Execute(context.Background())
	if application.KindOf(err) != application.FailureStructuralCorruption {
		t.Fatalf("expected structural-corruption failure, got %v", err)
	}
	if readFile(t, file) != original {
		t.Error("refused run modified the file")
	}
}

func TestPatch_UnbalancedFragmentNeverCommitted(t *testing.T) {
	// A fragment definition whose body opens a brace it never closes
	// must be caught by the balance check on the patched content, with
	// the on-disk file byte-identical.
	file := writeTemplate(t, bareTemplate)
	patch := newPatch(t, file)
	patch.Fragments = []domain.FragmentSpec{
		{
			Marker:   "// gradmend: broken",
			Anchor:   domain.Anchor{Kind: domain.AnchorInBlock, Block: "dependencies"},
			Template: "// gradmend: broken\nweird {\n    unclosed",
		},
	}

	_, err := patch.Execute(context.Background())
	if application.KindOf(err) != application.FailureStructuralCorruption {
		t.Fatalf("expected structural-corruption failure, got %v", err)
	}
	if readFile(t, file) != bareTemplate {
		t.Error("corrupt content reached the file")
	}
}

func TestPatch_OrphanedMarkerAborts(t *testing.T) {
	original := `dependencies {
    // gradmend: webview-deps
}

// gradmend: resolution-strategy
configurations.all {
    resolutionStrategy {
        force 'androidx.core:core:1.15.0'
        force 'androidx.annotation:annotation:1.9.1'
    }
}
`
	file := writeTemplate(t, original)
	patch := newPatch(t, file)

	_, err := patch.Execute(context.Background())
	if application.KindOf(err) != application.FailurePatternNotFound {
		t.Fatalf("expected pattern-not-found failure, got %v", err)
	}
	if readFile(t, file) != original {
		t.Error("failed run modified the file")
	}
	if !strings.Contains(err.Error(), domain.ManualCleanupInstructions) {
		t.Error("expected manual-cleanup guidance attached to the error")
	}
}

func TestPatch_ConvergesFromManualEdits(t *testing.T) {
	// A user hand-edits one version after a successful run; the next run
	// converges back to the same state.
	file := writeTemplate(t, bareTemplate)
	patch := newPatch(t, file)
	if _, err := patch.Execute(context.Background()); err != nil {
		t.Fatalf("setup run failed: %v", err)
	}
	patched := readFile(t, file)

	edited := strings.Replace(patched, "androidx.webkit:webkit:1.12.1", "androidx.webkit:webkit:1.4.0", 1)
	if err := os.WriteFile(file, []byte(edited), 0644); err != nil {
		t.Fatalf("editing template: %v", err)
	}

	result, err := patch.Execute(context.Background())
	if err != nil {
		t.Fatalf("converging run failed: %v", err)
	}
	if !result.Changed {
		t.Error("expected the edited file to be repaired")
	}
	if readFile(t, file) != patched {
		t.Error("repair did not converge to the patched content")
	}
}

func TestPatch_LegacyToolchainSelectsLegacyVersions(t *testing.T) {
	file := writeTemplate(t, bareTemplate)
	store := filesystem.NewStore()
	backups := filesystem.NewBackupStoreAt(t.TempDir(), 10)
	patch := NewPatchCommand(store, backups, nil, file, domain.LegacyVersions)

	if _, err := patch.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	content := readFile(t, file)
	if !strings.Contains(content, "androidx.core:core:1.6.0") {
		t.Errorf("legacy versions not injected:\n%s", content)
	}
	if strings.Contains(content, "1.15.0") {
		t.Errorf("modern version leaked into legacy run:\n%s", content)
	}
}

func TestPatch_ValidationRejectsEmptyFile(t *testing.T) {
	store := filesystem.NewStore()
	backups := filesystem.NewBackupStoreAt(t.TempDir(), 10)
	patch := NewPatchCommand(store, backups, nil, "", domain.ModernVersions)

	if _, err := patch.Execute(context.Background()); err == nil {
		t.Error("expected validation error for empty file path")
	}
}
