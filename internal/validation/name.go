package validation

import (
	"strings"
	"unicode"
)

const (
	nameMinLen = 2
	nameMaxLen = 100
)

// Reasons reported by ValidateName.
const (
	ReasonNameRequired         = "Name is required"
	ReasonNameTooShort         = "Name must be at least 2 characters long"
	ReasonNameTooLong          = "Name must be at most 100 characters long"
	ReasonNameDigits           = "Name cannot contain numbers"
	ReasonNameCharacters       = "Name can only contain letters, spaces, apostrophes, and hyphens"
	ReasonNameSpaces           = "Name cannot contain consecutive spaces"
	ReasonNameNoLetters        = "Name must contain at least one letter"
	ReasonNameEdgePunctuation  = "Name cannot start or end with a hyphen or apostrophe"
	ReasonNameRepeatedPunct    = "Name cannot contain consecutive hyphens or apostrophes"
)

// ValidateName checks a first, last or guardian name.
func ValidateName(raw string) Result {
	if blank(raw) {
		return fail(ReasonNameRequired)
	}
	name := strings.TrimSpace(raw)

	switch n := runeLen(name); {
	case n < nameMinLen:
		return fail(ReasonNameTooShort)
	case n > nameMaxLen:
		return fail(ReasonNameTooLong)
	}
	if hasDigit(name) {
		return fail(ReasonNameDigits)
	}
	if strings.IndexFunc(name, func(r rune) bool { return !isNameRune(r) }) >= 0 {
		return fail(ReasonNameCharacters)
	}
	if maxRun(name, unicode.IsSpace) >= 2 {
		return fail(ReasonNameSpaces)
	}
	if !hasLetter(name) {
		return fail(ReasonNameNoLetters)
	}
	if isNamePunct(firstRune(name)) || isNamePunct(lastRune(name)) {
		return fail(ReasonNameEdgePunctuation)
	}
	if maxRun(name, isNamePunct) >= 2 {
		return fail(ReasonNameRepeatedPunct)
	}
	return ok()
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsSpace(r) || isNamePunct(r)
}

func isNamePunct(r rune) bool {
	return r == '\'' || r == '-'
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	rs := []rune(s)
	if len(rs) == 0 {
		return 0
	}
	return rs[len(rs)-1]
}
