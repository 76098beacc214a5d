package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Reasons reported by ValidateAddress.
const (
	ReasonAddressRequired        = "Address is required"
	ReasonAddressTooLong         = "Address is too long"
	ReasonAddressTooShort        = "Please provide a complete address"
	ReasonAddressSpacing         = "Address contains too much blank space"
	ReasonAddressNoNumber        = "Address must include a street number"
	ReasonAddressNoLetters       = "Address must include a street name"
	ReasonAddressNotCanadian     = "Please provide a Canadian address with a postal code (e.g., K1A 0A9) or province name"
	ReasonAddressPostalFormat    = "Please check the postal code format (e.g., K1A 0A9)"
	ReasonAddressPostalFirst     = "Postal codes cannot start with D, F, I, O, Q, U, W or Z"
	ReasonAddressPostalLetters   = "Postal codes cannot use D, F, I, O, Q or U"
	ReasonAddressRepeatedPattern = "Address contains a repeated character pattern"
)

var (
	postalCodeRegex       = regexp.MustCompile(`[A-Za-z]\d[A-Za-z][ -]?\d[A-Za-z]\d`)
	strictPostalCodeRegex = regexp.MustCompile(`^[A-Z]\d[A-Z]\d[A-Z]\d$`)
	canadaRegex           = regexp.MustCompile(`(?i)\bcanada\b`)

	// Full names and two-letter abbreviations of the 13 provinces and territories.
	provinces = []string{
		"AB", "BC", "MB", "NB", "NL", "NS", "NT", "NU", "ON", "PE", "QC", "SK", "YT",
		"Alberta", "British Columbia", "Manitoba", "New Brunswick", "Newfoundland and Labrador",
		"Nova Scotia", "Northwest Territories", "Nunavut", "Ontario", "Prince Edward Island",
		"Quebec", "Saskatchewan", "Yukon",
	}

	postalFirstExcluded = "DFIOQUWZ"
	postalInnerExcluded = "DFIOQU"
)

// ValidateAddress checks a free-text, possibly multi-line, Canadian address.
func ValidateAddress(raw string) Result {
	if blank(raw) {
		return fail(ReasonAddressRequired)
	}
	address := strings.TrimSpace(raw)

	switch n := runeLen(address); {
	case n > 500:
		return fail(ReasonAddressTooLong)
	case n < 10:
		return fail(ReasonAddressTooShort)
	}
	if maxRun(address, unicode.IsSpace) >= 3 {
		return fail(ReasonAddressSpacing)
	}
	if !hasDigit(address) {
		return fail(ReasonAddressNoNumber)
	}
	if !hasLetter(address) {
		return fail(ReasonAddressNoLetters)
	}

	postal := postalCodeRegex.FindString(address)
	if postal == "" && !mentionsProvince(address) && !canadaRegex.MatchString(address) {
		return fail(ReasonAddressNotCanadian)
	}

	if postal != "" {
		code := strings.ToUpper(strings.NewReplacer(" ", "", "-", "").Replace(postal))
		if !strictPostalCodeRegex.MatchString(code) {
			return fail(ReasonAddressPostalFormat)
		}
		if strings.IndexByte(postalFirstExcluded, code[0]) >= 0 {
			return fail(ReasonAddressPostalFirst)
		}
		if strings.IndexByte(postalInnerExcluded, code[2]) >= 0 || strings.IndexByte(postalInnerExcluded, code[4]) >= 0 {
			return fail(ReasonAddressPostalLetters)
		}
	}

	if longestRepeat(stripSpace(address)) >= 5 {
		return fail(ReasonAddressRepeatedPattern)
	}
	return ok()
}

func mentionsProvince(address string) bool {
	upper := strings.ToUpper(address)
	for _, p := range provinces {
		if strings.Contains(upper, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// longestRepeat returns the length of the longest run of one repeated rune.
func longestRepeat(s string) int {
	longest, current := 0, 0
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			current++
		} else {
			current = 1
			prev = r
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}
