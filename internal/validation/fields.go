package validation

import (
	"strings"
	"time"
	"unicode"

	"github.com/noah-isme/k12-registration-api/internal/models"
)

// OptionalTextMaxLen bounds free-text fields such as medical conditions.
const OptionalTextMaxLen = 500

// Reasons reported by the grade and optional-text validators.
const (
	ReasonGradeRequired     = "Grade selection is required"
	ReasonGradeUnknown      = "Please select a valid grade level"
	ReasonOptionalTooLong   = "This field must be at most 500 characters long"
	ReasonOptionalCharacter = "This field contains unsupported characters"
)

// ValidateGrade checks that the value names one of the enumerated grade bands.
func ValidateGrade(raw string) Result {
	if blank(raw) {
		return fail(ReasonGradeRequired)
	}
	if !models.Grade(raw).Valid() {
		return fail(ReasonGradeUnknown)
	}
	return ok()
}

// ValidateOptionalText accepts an empty value, otherwise bounded text
// without control characters other than newline and tab.
func ValidateOptionalText(raw string) Result {
	if blank(raw) {
		return ok()
	}
	if runeLen(strings.TrimSpace(raw)) > OptionalTextMaxLen {
		return fail(ReasonOptionalTooLong)
	}
	if strings.IndexFunc(raw, func(r rune) bool {
		return unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t'
	}) >= 0 {
		return fail(ReasonOptionalCharacter)
	}
	return ok()
}

// Bindings returns the validator bound to every form field. The dateOfBirth
// rule is evaluated against clock().
func Bindings(clock func() time.Time) map[models.Field]Validator {
	if clock == nil {
		clock = time.Now
	}
	dateOfBirth := func(raw string) Result {
		return ValidateDateOfBirthAt(raw, clock())
	}
	return map[models.Field]Validator{
		models.FieldFirstName:         ValidateName,
		models.FieldLastName:          ValidateName,
		models.FieldEmail:             ValidateEmail,
		models.FieldPhone:             ValidatePhone,
		models.FieldDateOfBirth:       dateOfBirth,
		models.FieldGrade:             ValidateGrade,
		models.FieldGuardianName:      ValidateName,
		models.FieldGuardianPhone:     ValidatePhone,
		models.FieldAddress:           ValidateAddress,
		models.FieldPreviousSchool:    ValidateOptionalText,
		models.FieldMedicalConditions: ValidateOptionalText,
	}
}

