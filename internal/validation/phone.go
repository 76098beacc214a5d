package validation

import "strings"

// Reasons reported by ValidatePhone.
const (
	ReasonPhoneRequired         = "Phone number is required"
	ReasonPhoneTooLong          = "Phone number is too long"
	ReasonPhoneTooShort         = "Phone number is too short"
	ReasonPhoneDigitCount       = "Phone number must contain 10 digits, or 11 digits starting with 1"
	ReasonPhoneRepeated         = "Phone number cannot be a single repeated digit"
	ReasonPhoneSequential       = "Phone number cannot be a sequential pattern"
	ReasonPhoneCountryCode      = "11-digit phone numbers must start with country code 1"
	ReasonPhoneAreaFirstDigit   = "Area code must start with a digit from 2 to 9"
	ReasonPhoneAreaReserved     = "Area code is reserved and cannot be used"
	ReasonPhoneExchangeFirst    = "Exchange code must start with a digit from 2 to 9"
	ReasonPhoneExchangeReserved = "Exchange code is reserved and cannot be used"
)

var (
	sequentialDigits = []string{"0123456789", "1234567890", "9876543210", "0987654321"}

	reservedAreaCodes = map[string]struct{}{
		"000": {}, "111": {}, "555": {}, "800": {}, "888": {}, "900": {}, "999": {},
	}
	reservedExchangeCodes = map[string]struct{}{
		"000": {}, "111": {}, "555": {},
	}
)

// ValidatePhone checks a North American (NANP) phone number such as
// "(416) 234-5678" or "+1 416-234-5678".
func ValidatePhone(raw string) Result {
	if blank(raw) {
		return fail(ReasonPhoneRequired)
	}
	phone := strings.TrimSpace(raw)

	switch n := runeLen(phone); {
	case n > 20:
		return fail(ReasonPhoneTooLong)
	case n < 10:
		return fail(ReasonPhoneTooShort)
	}

	digits := digitsOnly(phone)
	if len(digits) < 10 || len(digits) > 11 {
		return fail(ReasonPhoneDigitCount)
	}
	if strings.Count(digits, digits[:1]) == len(digits) {
		return fail(ReasonPhoneRepeated)
	}
	for _, seq := range sequentialDigits {
		if strings.Contains(digits, seq) {
			return fail(ReasonPhoneSequential)
		}
	}

	local := digits
	if len(digits) == 11 {
		if digits[0] != '1' {
			return fail(ReasonPhoneCountryCode)
		}
		local = digits[1:]
	}

	area, exchange := local[:3], local[3:6]
	if area[0] < '2' {
		return fail(ReasonPhoneAreaFirstDigit)
	}
	if _, reserved := reservedAreaCodes[area]; reserved {
		return fail(ReasonPhoneAreaReserved)
	}
	if exchange[0] < '2' {
		return fail(ReasonPhoneExchangeFirst)
	}
	if _, reserved := reservedExchangeCodes[exchange]; reserved {
		return fail(ReasonPhoneExchangeReserved)
	}
	return ok()
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
