package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestRemove_FlatFragment(t *testing.T) {
	doc := `dependencies {
    // gradmend: webview-deps
    implementation 'androidx.core:core:1.6.0'
    implementation 'androidx.annotation:annotation:1.2.0'
    implementation 'androidx.webkit:webkit:1.4.0'
    implementation 'androidx.browser:browser:1.3.0'
    implementation fileTree(dir: 'libs', include: ['*.jar'])
}
`
	want := `dependencies {
    implementation fileTree(dir: 'libs', include: ['*.jar'])
}
`

	got, err := Remove(doc, DefaultFragments()[0])
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got != want {
		t.Errorf("unexpected document after removal:\n%s", got)
	}
}

func TestRemove_BlockFragment(t *testing.T) {
	doc := `apply plugin: 'android'

// gradmend: resolution-strategy
configurations.all {
    resolutionStrategy {
        force 'androidx.core:core:1.6.0'
        force 'androidx.annotation:annotation:1.2.0'
    }
}
`
	want := "apply plugin: 'android'\n\n"

	got, err := Remove(doc, DefaultFragments()[1])
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got != want {
		t.Errorf("unexpected document after removal:\n%q", got)
	}
}

func TestRemove_AbsentMarkerIsNoOp(t *testing.T) {
	doc := "dependencies {\n    implementation 'a:b:1.0'\n}\n"

	got, err := Remove(doc, DefaultFragments()[0])
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got != doc {
		t.Error("removing an absent fragment must not change the document")
	}
}

func TestRemove_StopsAtForeignLine(t *testing.T) {
	// A foreign declaration right after the fragment body must survive.
	doc := `dependencies {
    // gradmend: webview-deps
    implementation 'androidx.core:core:1.6.0'
    implementation 'com.example:unrelated:2.0'
}
`
	got, err := Remove(doc, DefaultFragments()[0])
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !strings.Contains(got, "com.example:unrelated:2.0") {
		t.Errorf("foreign line was deleted:\n%s", got)
	}
	if strings.Contains(got, "gradmend") {
		t.Errorf("marker survived removal:\n%s", got)
	}
}

func TestRemove_OrphanedMarkerFails(t *testing.T) {
	doc := "// gradmend: webview-deps\n\nunrelated text\n"

	got, err := Remove(doc, DefaultFragments()[0])
	if !errors.Is(err, ErrPatternNotFound) {
		t.Fatalf("expected ErrPatternNotFound, got %v", err)
	}
	if got != doc {
		t.Error("failed removal must leave the document untouched")
	}
}

func TestRemove_MissingBlockFails(t *testing.T) {
	doc := "// gradmend: resolution-strategy\nno block follows here\nor here\n"

	_, err := Remove(doc, DefaultFragments()[1])
	if !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("expected ErrPatternNotFound, got %v", err)
	}
}

func TestRemove_UnclosedBlockFails(t *testing.T) {
	doc := "// gradmend: resolution-strategy\nconfigurations.all {\n    resolutionStrategy {\n    }\n"

	_, err := Remove(doc, DefaultFragments()[1])
	if !errors.Is(err, ErrUnbalanced) {
		t.Errorf("expected ErrUnbalanced, got %v", err)
	}
}

func TestRemove_AnyKnownVersion(t *testing.T) {
	// Shape matching is version independent: a body written by an older
	// release is still bounded correctly.
	for _, vs := range []VersionSet{ModernVersions, LegacyVersions} {
		doc := "dependencies {\n" + indentLines(Render(DefaultFragments()[0], vs), "    ") + "\n}\n"

		got, err := Remove(doc, DefaultFragments()[0])
		if err != nil {
			t.Fatalf("Remove(%s) failed: %v", vs.Name, err)
		}
		if got != "dependencies {\n}\n" {
			t.Errorf("Remove(%s) left:\n%s", vs.Name, got)
		}
	}
}
