package commands

import (
	"context"
	"testing"

	"gradmend/internal/adapters/filesystem"
	"gradmend/internal/domain"
)

func TestRestore_BringsBackPreRunContent(t *testing.T) {
	file := writeTemplate(t, legacyTemplate)
	store := filesystem.NewStore()
	backups := filesystem.NewBackupStoreAt(t.TempDir(), 10)

	patch := NewPatchCommand(store, backups, nil, file, domain.ModernVersions)
	result, err := patch.Execute(context.Background())
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if result.Backup == nil {
		t.Fatal("expected a backup from the destructive run")
	}

	restore := NewRestoreCommand(backups, file, result.Backup.Path)
	if _, err := restore.Execute(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if readFile(t, file) != legacyTemplate {
		t.Error("restore did not bring back the pre-run content")
	}
}

func TestRestore_UnknownBackup(t *testing.T) {
	file := writeTemplate(t, bareTemplate)
	backups := filesystem.NewBackupStoreAt(t.TempDir(), 10)

	restore := NewRestoreCommand(backups, file, "/no/such/backup.bak")
	if _, err := restore.Execute(context.Background()); err == nil {
		t.Error("expected error for unknown backup path")
	}
}

func TestListBackups_EmptyStore(t *testing.T) {
	file := writeTemplate(t, bareTemplate)
	backups := filesystem.NewBackupStoreAt(t.TempDir(), 10)

	list := NewListBackupsCommand(backups, file)
	result, err := list.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("expected no backups, got %d", len(result.Records))
	}
}
