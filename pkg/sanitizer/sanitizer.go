// Package sanitizer normalizes caller-supplied booking form fields before
// validation. All functions are idempotent and never error; invalid input
// comes back as an empty string.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading and trailing whitespace and collapses
// internal whitespace runs into single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizePodName keeps the display name intact apart from whitespace
// cleanup; pod lookup is an exact match on the normalized form.
func NormalizePodName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail trims whitespace and lowercases the address. A blank email
// stays blank so the scheduler's missing-email check still fires.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
