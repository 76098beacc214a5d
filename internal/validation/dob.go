package validation

import (
	"strings"
	"time"
)

// Age limits for registration, in completed years.
const (
	MinStudentAge = 3
	MaxStudentAge = 25
	// BirthYearFloor is a fixed cutoff, independent of the rolling age window.
	BirthYearFloor = 1990
)

// Reasons reported by ValidateDateOfBirth.
const (
	ReasonDOBRequired    = "Date of birth is required"
	ReasonDOBInvalid     = "Please enter a valid date (YYYY-MM-DD)"
	ReasonDOBFuture      = "Date of birth cannot be in the future"
	ReasonDOBTooYoung    = "Student must be at least 3 years old"
	ReasonDOBTooOld      = "Student must be at most 25 years old"
	ReasonDOBYearRange   = "Birth year is outside the accepted range"
	ReasonDOBBeforeFloor = "Birth year cannot be earlier than 1990"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// ValidateDateOfBirth checks an ISO date of birth against the current date.
func ValidateDateOfBirth(raw string) Result {
	return ValidateDateOfBirthAt(raw, time.Now())
}

// ValidateDateOfBirthAt checks an ISO date of birth as of the given day.
// Only the calendar date of today is used.
func ValidateDateOfBirthAt(raw string, today time.Time) Result {
	if blank(raw) {
		return fail(ReasonDOBRequired)
	}
	dob, parsed := parseDate(strings.TrimSpace(raw))
	if !parsed {
		return fail(ReasonDOBInvalid)
	}

	ty, tm, td := today.Date()
	by, bm, bd := dob.Date()
	if by > ty || (by == ty && (bm > tm || (bm == tm && bd > td))) {
		return fail(ReasonDOBFuture)
	}

	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	switch {
	case age < MinStudentAge:
		return fail(ReasonDOBTooYoung)
	case age > MaxStudentAge:
		return fail(ReasonDOBTooOld)
	}

	if by < ty-MaxStudentAge || by > ty-MinStudentAge {
		return fail(ReasonDOBYearRange)
	}
	if by < BirthYearFloor {
		return fail(ReasonDOBBeforeFloor)
	}
	return ok()
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
