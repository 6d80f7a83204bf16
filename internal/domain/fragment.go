package domain

import (
	"fmt"
	"strings"
)

// AnchorKind says where a fragment gets injected when it is missing.
type AnchorKind int

const (
	// AnchorInBlock injects immediately after the opening brace of a named
	// top-level block (e.g. "dependencies {").
	AnchorInBlock AnchorKind = iota
	// AnchorEndOfFile appends the fragment after the last non-blank line.
	AnchorEndOfFile
)

func (k AnchorKind) String() string {
	switch k {
	case AnchorInBlock:
		return "InBlock"
	case AnchorEndOfFile:
		return "EndOfFile"
	default:
		return "Unknown"
	}
}

// Anchor is the structural location a fragment is inserted at.
type Anchor struct {
	Kind  AnchorKind
	Block string // block name for AnchorInBlock, e.g. "dependencies"
}

// VersionSet is a named bundle of library versions selected by the caller
// (e.g. modern vs legacy toolchain). Immutable for the duration of a run.
type VersionSet struct {
	Name       string
	Core       string
	Annotation string
	WebKit     string
	Browser    string
}

// ModernVersions is the bundle for current-generation toolchains.
var ModernVersions = VersionSet{
	Name:       "modern",
	Core:       "1.15.0",
	Annotation: "1.9.1",
	WebKit:     "1.12.1",
	Browser:    "1.8.0",
}

// LegacyVersions is the bundle for older toolchains that cannot take the
// current androidx releases.
var LegacyVersions = VersionSet{
	Name:       "legacy",
	Core:       "1.6.0",
	Annotation: "1.2.0",
	WebKit:     "1.4.0",
	Browser:    "1.3.0",
}

// VersionSetByName returns the preset bundle for a toolchain name.
func VersionSetByName(name string) (VersionSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "modern":
		return ModernVersions, nil
	case "legacy":
		return LegacyVersions, nil
	default:
		return VersionSet{}, fmt.Errorf("unknown toolchain: %s (expected modern or legacy)", name)
	}
}

// FragmentSpec describes one required fragment: a unique marker, a
// version-parameterized template whose first line is the marker itself,
// and the literals that must appear on file for the copy to be current.
//
// Templates use @core@, @annotation@, @webkit@ and @browser@ placeholders
// so that literal braces in the body stay available for brace scanning.
type FragmentSpec struct {
	Marker   string
	Anchor   Anchor
	Template string
	// Requires are version-parameterized literals that must all appear
	// within the fragment's span for it to classify as current.
	Requires []string
	// After names the marker of a fragment that must be injected first
	// because its body introduces this fragment's anchor block.
	After string
}

// HasBlock reports whether the fragment body contains a brace-delimited
// block. Block fragments are removed by brace matching, flat fragments by
// line-shape matching.
func (s FragmentSpec) HasBlock() bool {
	body := strings.TrimPrefix(s.Template, s.Marker)
	return strings.Contains(body, "{")
}

var placeholderOrder = []string{"@core@", "@annotation@", "@webkit@", "@browser@"}

func replacer(vs VersionSet) *strings.Replacer {
	return strings.NewReplacer(
		"@core@", vs.Core,
		"@annotation@", vs.Annotation,
		"@webkit@", vs.WebKit,
		"@browser@", vs.Browser,
	)
}

// Render substitutes the version set into the fragment template.
func Render(spec FragmentSpec, vs VersionSet) string {
	return replacer(vs).Replace(spec.Template)
}

// RenderRequires substitutes the version set into the required literals.
func RenderRequires(spec FragmentSpec, vs VersionSet) []string {
	r := replacer(vs)
	out := make([]string, len(spec.Requires))
	for i, req := range spec.Requires {
		out[i] = r.Replace(req)
	}
	return out
}

// lineShapes returns, for each body line of the template, the literal
// prefix before the first placeholder. These bound the removal of flat
// fragments regardless of which versions are currently on file.
func lineShapes(spec FragmentSpec) []string {
	var shapes []string
	for _, line := range strings.Split(spec.Template, "\n")[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cut := len(line)
		for _, ph := range placeholderOrder {
			if i := strings.Index(line, ph); i >= 0 && i < cut {
				cut = i
			}
		}
		shapes = append(shapes, line[:cut])
	}
	return shapes
}

// DefaultFragments is the fragment generation this build ships with: the
// webview dependency declarations inside the dependencies block, and a
// resolution-strategy block appended at end of file to pin transitive
// versions.
func DefaultFragments() []FragmentSpec {
	return []FragmentSpec{
		{
			Marker: "// gradmend: webview-deps",
			Anchor: Anchor{Kind: AnchorInBlock, Block: "dependencies"},
			Template: "// gradmend: webview-deps\n" +
				"implementation 'androidx.core:core:@core@'\n" +
				"implementation 'androidx.annotation:annotation:@annotation@'\n" +
				"implementation 'androidx.webkit:webkit:@webkit@'\n" +
				"implementation 'androidx.browser:browser:@browser@'",
			Requires: []string{
				"implementation 'androidx.core:core:@core@'",
				"implementation 'androidx.annotation:annotation:@annotation@'",
				"implementation 'androidx.webkit:webkit:@webkit@'",
				"implementation 'androidx.browser:browser:@browser@'",
			},
		},
		{
			Marker: "// gradmend: resolution-strategy",
			Anchor: Anchor{Kind: AnchorEndOfFile},
			Template: "// gradmend: resolution-strategy\n" +
				"configurations.all {\n" +
				"    resolutionStrategy {\n" +
				"        force 'androidx.core:core:@core@'\n" +
				"        force 'androidx.annotation:annotation:@annotation@'\n" +
				"    }\n" +
				"}",
			Requires: []string{
				"force 'androidx.core:core:@core@'",
				"force 'androidx.annotation:annotation:@annotation@'",
			},
		},
	}
}

// ValidateFragmentSet checks the invariants a fragment set must hold
// before a run: unique markers, templates that open with their own marker,
// no marker leaking into a sibling's body, and resolvable After references.
func ValidateFragmentSet(specs []FragmentSpec) error {
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if strings.TrimSpace(s.Marker) == "" {
			return fmt.Errorf("fragment with empty marker")
		}
		if seen[s.Marker] {
			return fmt.Errorf("duplicate marker: %s", s.Marker)
		}
		seen[s.Marker] = true
		if !strings.HasPrefix(s.Template, s.Marker) {
			return fmt.Errorf("template for %s must start with its marker", s.Marker)
		}
	}

	for _, s := range specs {
		body := strings.TrimPrefix(s.Template, s.Marker)
		for _, other := range specs {
			if strings.Contains(body, other.Marker) {
				return fmt.Errorf("marker %s appears inside body of %s", other.Marker, s.Marker)
			}
		}
		if s.After != "" && !seen[s.After] {
			return fmt.Errorf("fragment %s declares After on unknown marker %s", s.Marker, s.After)
		}
	}

	return nil
}
