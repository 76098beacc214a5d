package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Reasons reported by ValidateEmail.
const (
	ReasonEmailRequired      = "Email is required"
	ReasonEmailTooLong       = "Email address is too long"
	ReasonEmailTooShort      = "Email address is too short"
	ReasonEmailAt            = "Email address must contain exactly one @"
	ReasonEmailLocalLength   = "The part before @ must be between 1 and 64 characters"
	ReasonEmailLocalDots     = "The part before @ cannot contain consecutive dots"
	ReasonEmailLocalEdgeDot  = "The part before @ cannot start or end with a dot"
	ReasonEmailDomainLength  = "The domain must be between 1 and 253 characters"
	ReasonEmailDomainFormat  = "The domain is not a valid host name"
	ReasonEmailDomainNoTLD   = "The domain must include a top-level domain (e.g. .ca)"
	ReasonEmailTLD           = "The top-level domain must be 2 to 63 letters"
	ReasonEmailInvalidFormat = "Please enter a valid email address"
)

const hostnamePattern = `[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*`

var (
	hostnameRegex = regexp.MustCompile(`^` + hostnamePattern + `$`)
	emailRegex    = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@" + hostnamePattern + "$")
)

// ValidateEmail checks an email address.
func ValidateEmail(raw string) Result {
	if blank(raw) {
		return fail(ReasonEmailRequired)
	}
	email := strings.TrimSpace(raw)

	switch n := runeLen(email); {
	case n > 254:
		return fail(ReasonEmailTooLong)
	case n < 5:
		return fail(ReasonEmailTooShort)
	}
	if strings.Count(email, "@") != 1 {
		return fail(ReasonEmailAt)
	}

	local, domain, _ := strings.Cut(email, "@")
	if local == "" || runeLen(local) > 64 {
		return fail(ReasonEmailLocalLength)
	}
	if strings.Contains(local, "..") {
		return fail(ReasonEmailLocalDots)
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return fail(ReasonEmailLocalEdgeDot)
	}

	if domain == "" || runeLen(domain) > 253 {
		return fail(ReasonEmailDomainLength)
	}
	if !hostnameRegex.MatchString(domain) {
		return fail(ReasonEmailDomainFormat)
	}
	if !strings.Contains(domain, ".") {
		return fail(ReasonEmailDomainNoTLD)
	}
	tld := domain[strings.LastIndex(domain, ".")+1:]
	if n := len(tld); n < 2 || n > 63 || strings.IndexFunc(tld, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
		return fail(ReasonEmailTLD)
	}

	if !emailRegex.MatchString(email) {
		return fail(ReasonEmailInvalidFormat)
	}
	return ok()
}
