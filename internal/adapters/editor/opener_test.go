package editor

import "testing"

func TestOpener_CommandUsesEditorEnv(t *testing.T) {
	t.Setenv("EDITOR", "/usr/bin/true")

	cmd, err := NewOpener().Command("/tmp/mainTemplate.gradle")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	if cmd.Args[0] != "/usr/bin/true" {
		t.Errorf("expected $EDITOR to win, got %s", cmd.Args[0])
	}
	if len(cmd.Args) != 2 || cmd.Args[1] != "/tmp/mainTemplate.gradle" {
		t.Errorf("expected the file as sole argument, got %v", cmd.Args)
	}
}

func TestOpener_VisualFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "/usr/bin/true")

	cmd, err := NewOpener().Command("/tmp/mainTemplate.gradle")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if cmd.Args[0] != "/usr/bin/true" {
		t.Errorf("expected $VISUAL fallback, got %s", cmd.Args[0])
	}
}

func TestOpener_NoEditorFound(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	t.Setenv("PATH", "")

	if _, err := NewOpener().Command("/tmp/mainTemplate.gradle"); err == nil {
		t.Error("expected an error with no editor available")
	}
}
