package application

import (
	"fmt"
	"regexp"
	"strings"

	"gradmend/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", fieldName),
		}
	}
	return nil
}

var versionRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+(\.[0-9]+)?$`)

// ValidateVersionSet checks that every version in the bundle is present
// and has a MAJOR.MINOR[.PATCH] shape.
func ValidateVersionSet(vs domain.VersionSet) error {
	fields := map[string]string{
		"core":       vs.Core,
		"annotation": vs.Annotation,
		"webkit":     vs.WebKit,
		"browser":    vs.Browser,
	}
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			return &ValidationError{
				Field:   name,
				Message: fmt.Sprintf("%s version is required", name),
			}
		}
		if !versionRegex.MatchString(v) {
			return &ValidationError{
				Field:   name,
				Message: fmt.Sprintf("invalid %s version: %s", name, v),
			}
		}
	}
	return nil
}
