package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// ErrAnchorNotFound indicates the named anchor block does not exist in the
// document. Injection must abort the whole run: a dangling dependency
// declaration without its counterpart is worse than not patching at all.
var ErrAnchorNotFound = errors.New("anchor block not found")

const indentUnit = "    "

// Insert renders the fragment and places it at its anchor. Insertion
// happens at most once: a document that already contains the marker is
// returned unchanged.
func Insert(doc string, spec FragmentSpec, vs VersionSet) (string, error) {
	if strings.Contains(doc, spec.Marker) {
		return doc, nil
	}

	rendered := Render(spec, vs)

	switch spec.Anchor.Kind {
	case AnchorInBlock:
		return insertInBlock(doc, spec.Anchor.Block, rendered)
	case AnchorEndOfFile:
		return appendAtEnd(doc, rendered), nil
	default:
		return doc, fmt.Errorf("unknown anchor kind %d for %s", spec.Anchor.Kind, spec.Marker)
	}
}

// Anchor patterns are compiled once per block name.
var (
	anchorMu       sync.Mutex
	anchorPatterns = map[string]*regexp.Regexp{}
)

func anchorPattern(block string) *regexp.Regexp {
	anchorMu.Lock()
	defer anchorMu.Unlock()
	re, ok := anchorPatterns[block]
	if !ok {
		re = regexp.MustCompile(`(?m)^([ \t]*)` + regexp.QuoteMeta(block) + `\s*\{`)
		anchorPatterns[block] = re
	}
	return re
}

// insertInBlock places the body on the line after the first opening brace
// of the named block, indented one level past the block header.
func insertInBlock(doc, block, body string) (string, error) {
	loc := anchorPattern(block).FindStringSubmatchIndex(doc)
	if loc == nil {
		return doc, fmt.Errorf("%w: %s", ErrAnchorNotFound, block)
	}

	headerIndent := doc[loc[2]:loc[3]]
	indented := indentLines(body, headerIndent+indentUnit)

	// Insert after the newline that ends the header line.
	at := loc[1]
	if nl := strings.IndexByte(doc[at:], '\n'); nl >= 0 {
		at += nl + 1
		return doc[:at] + indented + "\n" + doc[at:], nil
	}
	return doc + "\n" + indented + "\n", nil
}

func appendAtEnd(doc, body string) string {
	trimmed := strings.TrimRight(doc, " \t\n")
	if trimmed == "" {
		return body + "\n"
	}
	return trimmed + "\n\n" + body + "\n"
}

func indentLines(body, indent string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// OrderForInjection returns the specs sorted so that any fragment named in
// an After field is injected before its dependents. Order is otherwise
// preserved.
func OrderForInjection(specs []FragmentSpec) []FragmentSpec {
	placed := make(map[string]bool, len(specs))
	ordered := make([]FragmentSpec, 0, len(specs))
	remaining := append([]FragmentSpec(nil), specs...)

	for len(remaining) > 0 {
		progressed := false
		next := remaining[:0]
		for _, s := range remaining {
			if s.After == "" || placed[s.After] {
				ordered = append(ordered, s)
				placed[s.Marker] = true
				progressed = true
			} else {
				next = append(next, s)
			}
		}
		remaining = next
		if !progressed {
			// Unsatisfiable After chain; keep declaration order.
			ordered = append(ordered, remaining...)
			break
		}
	}
	return ordered
}
