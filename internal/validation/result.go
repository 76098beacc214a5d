// Package validation holds the field rules applied to the student
// registration form. Every rule is a pure function of its input: failures are
// reported as data, and only the first violated rule is reported.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Result is the verdict of a single validation call.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Validator checks one raw field value.
type Validator func(raw string) Result

func ok() Result {
	return Result{Valid: true}
}

func fail(reason string) Result {
	return Result{Valid: false, Reason: reason}
}

func blank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// maxRun returns the length of the longest run of consecutive runes that
// satisfy match.
func maxRun(s string, match func(rune) bool) int {
	longest, current := 0, 0
	for _, r := range s {
		if match(r) {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}
	return longest
}
