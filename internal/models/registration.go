package models

import "time"

// Field identifies one input of the student registration form.
type Field string

// Registration form fields.
const (
	FieldFirstName         Field = "firstName"
	FieldLastName          Field = "lastName"
	FieldEmail             Field = "email"
	FieldPhone             Field = "phone"
	FieldDateOfBirth       Field = "dateOfBirth"
	FieldGrade             Field = "grade"
	FieldGuardianName      Field = "guardianName"
	FieldGuardianPhone     Field = "guardianPhone"
	FieldAddress           Field = "address"
	FieldPreviousSchool    Field = "previousSchool"
	FieldMedicalConditions Field = "medicalConditions"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldDateOfBirth,
	FieldGrade,
	FieldGuardianName,
	FieldGuardianPhone,
	FieldAddress,
	FieldPreviousSchool,
	FieldMedicalConditions,
}

// ParseField resolves a field name. The second return is false for unknown names.
func ParseField(raw string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == raw {
			return f, true
		}
	}
	return "", false
}

// Grade is the school level used as lookup key into the reference tables.
type Grade string

// Supported grade bands.
const (
	GradeKindergarten Grade = "Kindergarten"
	Grade1To5         Grade = "Grade 1-5"
	Grade6To8         Grade = "Grade 6-8"
	Grade9To10        Grade = "Grade 9-10"
	Grade11To12       Grade = "Grade 11-12"
)

// Grades lists the grade bands in ascending order.
var Grades = []Grade{GradeKindergarten, Grade1To5, Grade6To8, Grade9To10, Grade11To12}

// Valid reports whether g is one of the enumerated grade bands.
func (g Grade) Valid() bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}

// FieldErrors maps a field to the single reason its current value was rejected.
type FieldErrors map[Field]string

// Has reports whether the field currently carries an error.
func (e FieldErrors) Has(field Field) bool {
	_, ok := e[field]
	return ok
}

// Clone returns an independent copy.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Strings converts the map for JSON error details.
func (e FieldErrors) Strings() map[string]string {
	out := make(map[string]string, len(e))
	for k, v := range e {
		out[string(k)] = v
	}
	return out
}

// Registration is a finalized, validated student registration. Values are
// stored exactly as entered.
type Registration struct {
	ID                string    `db:"id" json:"id"`
	FirstName         string    `db:"first_name" json:"firstName"`
	LastName          string    `db:"last_name" json:"lastName"`
	Email             string    `db:"email" json:"email"`
	Phone             string    `db:"phone" json:"phone"`
	DateOfBirth       string    `db:"date_of_birth" json:"dateOfBirth"`
	Grade             Grade     `db:"grade" json:"grade"`
	GuardianName      string    `db:"guardian_name" json:"guardianName"`
	GuardianPhone     string    `db:"guardian_phone" json:"guardianPhone"`
	Address           string    `db:"address" json:"address"`
	PreviousSchool    string    `db:"previous_school" json:"previousSchool,omitempty"`
	MedicalConditions string    `db:"medical_conditions" json:"medicalConditions,omitempty"`
	RegisteredAt      time.Time `db:"registered_at" json:"registrationDate"`
}

// Value returns the stored value of a form field.
func (r Registration) Value(field Field) string {
	switch field {
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldDateOfBirth:
		return r.DateOfBirth
	case FieldGrade:
		return string(r.Grade)
	case FieldGuardianName:
		return r.GuardianName
	case FieldGuardianPhone:
		return r.GuardianPhone
	case FieldAddress:
		return r.Address
	case FieldPreviousSchool:
		return r.PreviousSchool
	case FieldMedicalConditions:
		return r.MedicalConditions
	}
	return ""
}

// NewRegistration builds a record from a complete value set.
func NewRegistration(id string, values map[Field]string, registeredAt time.Time) Registration {
	return Registration{
		ID:                id,
		FirstName:         values[FieldFirstName],
		LastName:          values[FieldLastName],
		Email:             values[FieldEmail],
		Phone:             values[FieldPhone],
		DateOfBirth:       values[FieldDateOfBirth],
		Grade:             Grade(values[FieldGrade]),
		GuardianName:      values[FieldGuardianName],
		GuardianPhone:     values[FieldGuardianPhone],
		Address:           values[FieldAddress],
		PreviousSchool:    values[FieldPreviousSchool],
		MedicalConditions: values[FieldMedicalConditions],
		RegisteredAt:      registeredAt,
	}
}

// RegistrationFilter narrows registration listings.
type RegistrationFilter struct {
	Grade     Grade
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
