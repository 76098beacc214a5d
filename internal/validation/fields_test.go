package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/k12-registration-api/internal/models"
)

func TestValidateGrade(t *testing.T) {
	for _, g := range models.Grades {
		assert.True(t, ValidateGrade(string(g)).Valid, g)
	}
	assert.Equal(t, ReasonGradeRequired, ValidateGrade("").Reason)
	assert.Equal(t, ReasonGradeUnknown, ValidateGrade("Grade 13").Reason)
	assert.Equal(t, ReasonGradeUnknown, ValidateGrade("kindergarten").Reason)
}

func TestValidateOptionalText(t *testing.T) {
	assert.True(t, ValidateOptionalText("").Valid)
	assert.True(t, ValidateOptionalText("Peanut allergy\nCarries an EpiPen").Valid)
	assert.Equal(t, ReasonOptionalTooLong, ValidateOptionalText(strings.Repeat("x", 501)).Reason)
	assert.Equal(t, ReasonOptionalCharacter, ValidateOptionalText("bad\x00value").Reason)
}

func TestBindingsCoverEveryField(t *testing.T) {
	bindings := Bindings(nil)
	require.Len(t, bindings, len(models.Fields))
	for _, f := range models.Fields {
		assert.NotNil(t, bindings[f], f)
	}
}

func TestBindingsDateOfBirthUsesClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC) }
	rule := Bindings(clock)[models.FieldDateOfBirth]
	assert.True(t, rule("2019-01-15").Valid)
}

func TestValidatorsAreDeterministic(t *testing.T) {
	inputs := []string{"", "O'Brien", "John2", "(416) 234-5678", "a@b.co", "123 Main St, Ottawa, ON K1A 0A9", "2019-01-01"}
	bindings := Bindings(func() time.Time { return time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC) })
	for field, rule := range bindings {
		for _, in := range inputs {
			assert.Equal(t, rule(in), rule(in), "%s(%q)", field, in)
		}
	}
}
