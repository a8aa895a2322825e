package grading

import (
	"regexp"
	"strings"
)

const outputLabel = "Output:"

var listSeparator = regexp.MustCompile(`\s*,\s*`)

// Normalize canonicalizes program output for comparison: leading "Output:"
// labels are stripped, surrounding whitespace is trimmed, and inside a
// bracketed list literal the whitespace around comma separators is collapsed
// to exactly ", ". Values and ordering are otherwise compared verbatim.
// Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	for strings.HasPrefix(s, outputLabel) {
		s = strings.TrimSpace(strings.TrimPrefix(s, outputLabel))
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = listSeparator.ReplaceAllString(s, ", ")
	}
	return s
}

// OutputsMatch reports whether actual output equals expected output after
// normalization of both sides.
func OutputsMatch(actual, expected string) bool {
	return Normalize(actual) == Normalize(expected)
}
