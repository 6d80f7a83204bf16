package domain

import "strings"

// FragmentState is the derived condition of one fragment in a document.
// It is recomputed from file content on every run; the file on disk is the
// only source of truth.
type FragmentState int

const (
	StateAbsent FragmentState = iota
	StateCorrect
	StateStale
)

func (s FragmentState) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateCorrect:
		return "correct"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Classify inspects the document and reports, per fragment, whether it is
// absent, present and current, or present but stale. Matching is substring
// based: the enclosing file belongs to other tools and must be tolerated,
// never parsed.
func Classify(doc string, specs []FragmentSpec, vs VersionSet) map[string]FragmentState {
	states := make(map[string]FragmentState, len(specs))
	for _, spec := range specs {
		states[spec.Marker] = classifyOne(doc, spec, vs)
	}
	return states
}

func classifyOne(doc string, spec FragmentSpec, vs VersionSet) FragmentState {
	idx := strings.Index(doc, spec.Marker)
	if idx < 0 {
		return StateAbsent
	}

	end, err := span(doc, spec, idx)
	if err != nil {
		// Marker present but the body no longer has a recognizable
		// shape; the sanitizer decides whether removal is safe.
		return StateStale
	}

	window := doc[lineStart(doc, idx):end]
	for _, req := range RenderRequires(spec, vs) {
		if !strings.Contains(window, req) {
			return StateStale
		}
	}
	return StateCorrect
}

// NeedsPatch reports whether any fragment is not in its correct state.
func NeedsPatch(states map[string]FragmentState) bool {
	for _, s := range states {
		if s != StateCorrect {
			return true
		}
	}
	return false
}
