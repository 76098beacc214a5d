package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		valid  bool
		reason string
	}{
		{name: "formatted", input: "(416) 234-5678", valid: true},
		{name: "dashed", input: "416-234-5678", valid: true},
		{name: "dotted", input: "416.234.5678", valid: true},
		{name: "country code", input: "+1 416 234 5678", valid: true},
		{name: "country code digits", input: "14162345678", valid: true},
		{name: "empty", input: "", reason: ReasonPhoneRequired},
		{name: "whitespace", input: "   ", reason: ReasonPhoneRequired},
		{name: "too short raw", input: "416234567", reason: ReasonPhoneTooShort},
		{name: "too long raw", input: "+1 (416) 234 - 5678 ext", reason: ReasonPhoneTooLong},
		{name: "too few digits", input: "416-234-56x", reason: ReasonPhoneDigitCount},
		{name: "too many digits", input: "416234567890", reason: ReasonPhoneDigitCount},
		{name: "repeated digit", input: "2222222222", reason: ReasonPhoneRepeated},
		{name: "ascending sequence", input: "1234567890", reason: ReasonPhoneSequential},
		{name: "descending sequence", input: "9876543210", reason: ReasonPhoneSequential},
		{name: "sequence inside", input: "10123456789", reason: ReasonPhoneSequential},
		{name: "wrong country code", input: "24162345678", reason: ReasonPhoneCountryCode},
		{name: "area starts with 1", input: "1162345678", reason: ReasonPhoneAreaFirstDigit},
		{name: "area starts with 0", input: "(016) 234-5678", reason: ReasonPhoneAreaFirstDigit},
		{name: "reserved area 800", input: "800-234-5678", reason: ReasonPhoneAreaReserved},
		{name: "reserved area 555", input: "555-234-5678", reason: ReasonPhoneAreaReserved},
		{name: "exchange starts with 0", input: "416-034-5678", reason: ReasonPhoneExchangeFirst},
		{name: "reserved exchange 555", input: "(613) 555-0142", reason: ReasonPhoneExchangeReserved},
		{name: "reserved exchange 555 trailing zeros", input: "6135550000", reason: ReasonPhoneExchangeReserved},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidatePhone(tc.input)
			assert.Equal(t, tc.valid, res.Valid)
			assert.Equal(t, tc.reason, res.Reason)
		})
	}
}

func TestValidatePhoneReasonsAreDistinct(t *testing.T) {
	reasons := []string{
		ReasonPhoneRequired, ReasonPhoneTooLong, ReasonPhoneTooShort, ReasonPhoneDigitCount,
		ReasonPhoneRepeated, ReasonPhoneSequential, ReasonPhoneCountryCode, ReasonPhoneAreaFirstDigit,
		ReasonPhoneAreaReserved, ReasonPhoneExchangeFirst, ReasonPhoneExchangeReserved,
	}
	seen := map[string]bool{}
	for _, r := range reasons {
		assert.False(t, seen[r], r)
		seen[r] = true
	}
}
