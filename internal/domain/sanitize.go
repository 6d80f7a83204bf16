package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPatternNotFound indicates the sanitizer could not confidently bound a
// fragment for removal. Callers must abort rather than guess, so unrelated
// content is never deleted.
var ErrPatternNotFound = errors.New("fragment shape not found after marker")

// lineStart returns the index of the first character of the line
// containing i.
func lineStart(doc string, i int) int {
	if nl := strings.LastIndexByte(doc[:i], '\n'); nl >= 0 {
		return nl + 1
	}
	return 0
}

// span computes the end index (exclusive) of the fragment whose marker
// starts at markerIdx. Block fragments end at the brace matching their
// first block open; flat fragments end after the last line matching one of
// the template's declared line shapes.
func span(doc string, spec FragmentSpec, markerIdx int) (int, error) {
	// Position after the marker line.
	pos := markerIdx
	if nl := strings.IndexByte(doc[markerIdx:], '\n'); nl >= 0 {
		pos = markerIdx + nl + 1
	} else {
		pos = len(doc)
	}

	if spec.HasBlock() {
		return blockSpan(doc, spec, pos)
	}
	return flatSpan(doc, spec, pos)
}

// blockSpan finds the nearest block open after the marker, bounded by the
// template's own line count so a missing block never swallows foreign text.
func blockSpan(doc string, spec FragmentSpec, pos int) (int, error) {
	maxLines := strings.Count(spec.Template, "\n") + 2
	for line := 0; line < maxLines && pos < len(doc); line++ {
		end := strings.IndexByte(doc[pos:], '\n')
		if end < 0 {
			end = len(doc) - pos
		}
		if open := strings.IndexByte(doc[pos:pos+end], '{'); open >= 0 {
			close, err := MatchBrace(doc, pos+open)
			if err != nil {
				return 0, err
			}
			return close + 1, nil
		}
		pos += end + 1
	}
	return 0, fmt.Errorf("%w: no block opens near marker %s", ErrPatternNotFound, spec.Marker)
}

// flatSpan consumes consecutive lines matching the fragment's line shapes.
func flatSpan(doc string, spec FragmentSpec, pos int) (int, error) {
	shapes := lineShapes(spec)
	lastEnd := -1
	for pos < len(doc) {
		end := strings.IndexByte(doc[pos:], '\n')
		if end < 0 {
			end = len(doc) - pos
		}
		line := strings.TrimSpace(doc[pos : pos+end])
		if !matchesShape(line, shapes) {
			break
		}
		lastEnd = pos + end
		pos = lastEnd + 1
	}
	if lastEnd < 0 {
		return 0, fmt.Errorf("%w: marker %s has no matching body lines", ErrPatternNotFound, spec.Marker)
	}
	return lastEnd, nil
}

func matchesShape(line string, shapes []string) bool {
	for _, shape := range shapes {
		if strings.HasPrefix(line, shape) {
			return true
		}
	}
	return false
}

// Remove deletes the fragment tagged by spec's marker from the document,
// from the start of the marker line through the fragment's computed end.
// Removing an absent marker is a no-op.
func Remove(doc string, spec FragmentSpec) (string, error) {
	idx := strings.Index(doc, spec.Marker)
	if idx < 0 {
		return doc, nil
	}

	start := lineStart(doc, idx)
	end, err := span(doc, spec, idx)
	if err != nil {
		return doc, err
	}
	// Swallow the newline terminating the fragment so no blank line is
	// left behind.
	if end < len(doc) && doc[end] == '\n' {
		end++
	}

	return doc[:start] + doc[end:], nil
}
