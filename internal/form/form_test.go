package form

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/validation"
)

var fixedNow = time.Date(2024, time.May, 1, 14, 0, 0, 0, time.FixedZone("EDT", -4*3600))

func newTestForm() *Form {
	return New(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "reg-1" }),
	)
}

func validValues() map[models.Field]string {
	return map[models.Field]string{
		models.FieldFirstName:         "Amélie",
		models.FieldLastName:          "O'Brien-Smith",
		models.FieldEmail:             " parent@school.ca ",
		models.FieldPhone:             "(416) 234-5678",
		models.FieldDateOfBirth:       "2019-01-15",
		models.FieldGrade:             string(models.GradeKindergarten),
		models.FieldGuardianName:      "Jean O'Brien",
		models.FieldGuardianPhone:     "+1 613-234-5678",
		models.FieldAddress:           "123 Main St, Ottawa, ON K1A 0A9",
		models.FieldPreviousSchool:    "",
		models.FieldMedicalConditions: "Peanut allergy",
	}
}

func fill(t *testing.T, f *Form, values map[models.Field]string) {
	t.Helper()
	for field, value := range values {
		require.NoError(t, f.Change(field, value))
	}
}

func TestSubmitBuildsRecordWithExactValues(t *testing.T) {
	f := newTestForm()
	values := validValues()
	fill(t, f, values)

	record, errs, err := f.Submit()
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NotNil(t, record)

	assert.Equal(t, "reg-1", record.ID)
	assert.Equal(t, fixedNow.UTC(), record.RegisteredAt)
	for field, value := range values {
		assert.Equal(t, value, record.Value(field), field)
	}
	assert.Equal(t, StateSubmitted, f.State())

	stored, ok := f.Record()
	require.True(t, ok)
	assert.Equal(t, *record, stored)
}

func TestSubmitWithErrorsBuildsNoRecord(t *testing.T) {
	f := newTestForm()
	values := validValues()
	values[models.FieldFirstName] = "John2"
	values[models.FieldPhone] = "(613) 555-0142"
	fill(t, f, values)

	record, errs, err := f.Submit()
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Equal(t, models.FieldErrors{
		models.FieldFirstName: validation.ReasonNameDigits,
		models.FieldPhone:     validation.ReasonPhoneExchangeReserved,
	}, errs)
	assert.Equal(t, StateEditing, f.State())
	_, ok := f.Record()
	assert.False(t, ok)
}

func TestSubmitEmptyFormReportsEveryRequiredField(t *testing.T) {
	_, errs, err := newTestForm().Submit()
	require.NoError(t, err)
	assert.Len(t, errs, 9)
	assert.False(t, errs.Has(models.FieldPreviousSchool))
	assert.False(t, errs.Has(models.FieldMedicalConditions))
	assert.Equal(t, validation.ReasonGradeRequired, errs[models.FieldGrade])
}

func TestChangeClearsErrorWithoutRevalidating(t *testing.T) {
	f := newTestForm()
	require.NoError(t, f.Change(models.FieldEmail, "a@@b.com"))
	res, err := f.Blur(models.FieldEmail)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, f.Errors().Has(models.FieldEmail))

	require.NoError(t, f.Change(models.FieldEmail, "still@@bad"))
	assert.False(t, f.Errors().Has(models.FieldEmail))
}

func TestBlurUpdatesOnlyThatField(t *testing.T) {
	f := newTestForm()
	require.NoError(t, f.Change(models.FieldFirstName, "J"))
	require.NoError(t, f.Change(models.FieldLastName, "2"))

	_, err := f.Blur(models.FieldFirstName)
	require.NoError(t, err)
	errs := f.Errors()
	assert.Equal(t, validation.ReasonNameTooShort, errs[models.FieldFirstName])
	assert.False(t, errs.Has(models.FieldLastName))

	require.NoError(t, f.Change(models.FieldFirstName, "Jo"))
	res, err := f.Blur(models.FieldFirstName)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, f.Errors())
}

func TestSubmitSupersedesStaleErrors(t *testing.T) {
	f := newTestForm()
	fill(t, f, validValues())
	require.NoError(t, f.Change(models.FieldFirstName, "J"))
	_, _ = f.Blur(models.FieldFirstName)
	require.NoError(t, f.Change(models.FieldFirstName, "Jo"))
	require.NoError(t, f.Change(models.FieldLastName, "Smith3"))

	_, errs, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, models.FieldErrors{models.FieldLastName: validation.ReasonNameDigits}, errs)
	assert.Equal(t, errs, f.Errors())
}

func TestEventsAfterSubmitAreRejected(t *testing.T) {
	f := newTestForm()
	fill(t, f, validValues())
	_, _, err := f.Submit()
	require.NoError(t, err)

	assert.ErrorIs(t, f.Change(models.FieldFirstName, "Other"), ErrSubmitted)
	_, err = f.Blur(models.FieldFirstName)
	assert.ErrorIs(t, err, ErrSubmitted)
	_, _, err = f.Submit()
	assert.ErrorIs(t, err, ErrSubmitted)

	record, _ := f.Record()
	assert.Equal(t, "Amélie", record.FirstName)
}

func TestUnknownField(t *testing.T) {
	f := newTestForm()
	assert.ErrorIs(t, f.Change(models.Field("nickname"), "x"), ErrUnknownField)
	_, err := f.Blur(models.Field("nickname"))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestReturnedCopiesDoNotAliasState(t *testing.T) {
	f := newTestForm()
	require.NoError(t, f.Change(models.FieldFirstName, "J"))
	_, _ = f.Blur(models.FieldFirstName)

	errs := f.Errors()
	errs[models.FieldFirstName] = "edited"
	values := f.Values()
	values[models.FieldFirstName] = "edited"

	assert.Equal(t, validation.ReasonNameTooShort, f.Errors()[models.FieldFirstName])
	assert.Equal(t, "J", f.Values()[models.FieldFirstName])
}

func TestValidateIsIdempotent(t *testing.T) {
	now := func() time.Time { return fixedNow }
	good := validValues()
	bad := validValues()
	bad[models.FieldAddress] = "123 Main St"

	assert.Equal(t, Validate(good, now), Validate(good, now))
	assert.Empty(t, Validate(good, now))
	first := Validate(bad, now)
	assert.Equal(t, first, Validate(bad, now))
	assert.Equal(t, validation.ReasonAddressNotCanadian, first[models.FieldAddress])
}

func TestSubmitFuncCommitFailureKeepsFormEditable(t *testing.T) {
	f := newTestForm()
	fill(t, f, validValues())

	_, _, err := f.SubmitFunc(func(models.Registration) error { return errors.New("db down") })
	assert.EqualError(t, err, "db down")
	assert.Equal(t, StateEditing, f.State())
	_, ok := f.Record()
	assert.False(t, ok)

	var committed models.Registration
	record, errs, err := f.SubmitFunc(func(r models.Registration) error {
		committed = r
		return nil
	})
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, committed, *record)
	assert.Equal(t, StateSubmitted, f.State())
}

func TestSubmitFuncSkipsCommitWhenInvalid(t *testing.T) {
	f := newTestForm()
	called := false
	_, errs, err := f.SubmitFunc(func(models.Registration) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, errs)
	assert.False(t, called)
}
