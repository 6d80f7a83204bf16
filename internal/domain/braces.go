package domain

import (
	"errors"
	"fmt"
)

// ErrUnbalanced indicates that brace delimiters in a document do not pair up.
var ErrUnbalanced = errors.New("unbalanced braces")

// MatchBrace returns the index of the closing brace matching the opening
// brace at open. It counts depth forward, ignoring content, so it works on
// any brace-delimited text without parsing it.
func MatchBrace(text string, open int) (int, error) {
	if open < 0 || open >= len(text) {
		return 0, fmt.Errorf("brace index %d out of range", open)
	}
	if text[open] != '{' {
		return 0, fmt.Errorf("no opening brace at index %d", open)
	}

	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: no close for brace at index %d", ErrUnbalanced, open)
}

// CheckBalance scans the whole document and verifies that brace depth ends
// at zero and never goes negative. Used as the pre-commit structural check.
func CheckBalance(text string) error {
	depth := 0
	line := 1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			line++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unexpected '}' at line %d", ErrUnbalanced, line)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed brace(s)", ErrUnbalanced, depth)
	}
	return nil
}
