package dto

import (
	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/validation"
)

// FieldValueRequest carries a single raw field value. Empty values are
// legitimate input and are validated by the field rule.
type FieldValueRequest struct {
	Value string `json:"value"`
}

// FieldValidationResponse is the verdict for one field.
type FieldValidationResponse struct {
	Field  string `json:"field"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// NewFieldValidationResponse adapts a rule result.
func NewFieldValidationResponse(field models.Field, res validation.Result) FieldValidationResponse {
	return FieldValidationResponse{Field: string(field), Valid: res.Valid, Reason: res.Reason}
}

// RegistrationRequest is a complete registration payload submitted in one call.
type RegistrationRequest struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	DateOfBirth       string `json:"dateOfBirth"`
	Grade             string `json:"grade"`
	GuardianName      string `json:"guardianName"`
	GuardianPhone     string `json:"guardianPhone"`
	Address           string `json:"address"`
	PreviousSchool    string `json:"previousSchool"`
	MedicalConditions string `json:"medicalConditions"`
}

// Values maps the payload onto form fields.
func (r RegistrationRequest) Values() map[models.Field]string {
	return map[models.Field]string{
		models.FieldFirstName:         r.FirstName,
		models.FieldLastName:          r.LastName,
		models.FieldEmail:             r.Email,
		models.FieldPhone:             r.Phone,
		models.FieldDateOfBirth:       r.DateOfBirth,
		models.FieldGrade:             r.Grade,
		models.FieldGuardianName:      r.GuardianName,
		models.FieldGuardianPhone:     r.GuardianPhone,
		models.FieldAddress:           r.Address,
		models.FieldPreviousSchool:    r.PreviousSchool,
		models.FieldMedicalConditions: r.MedicalConditions,
	}
}

// BlurResponse reports a blur verdict with the updated form.
type BlurResponse struct {
	FieldValidationResponse
	Form models.FormSnapshot `json:"form"`
}

// RosterQuery filters the admin registration listing and export.
type RosterQuery struct {
	Grade     string `form:"grade" json:"grade" validate:"omitempty,grade"`
	Search    string `form:"search" json:"search" validate:"omitempty,max=100"`
	Page      int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" json:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" json:"sort_by" validate:"omitempty,oneof=registrationDate lastName grade"`
	SortOrder string `form:"sort_order" json:"sort_order" validate:"omitempty,oneof=asc desc"`
	Format    string `form:"format" json:"format" validate:"omitempty,oneof=csv pdf"`
}

// Filter converts the query into a repository filter.
func (q RosterQuery) Filter() models.RegistrationFilter {
	return models.RegistrationFilter{
		Grade:     models.Grade(q.Grade),
		Search:    q.Search,
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
}

// GradeSummary lists a grade with its published total fee.
type GradeSummary struct {
	Grade    models.Grade `json:"grade"`
	TotalFee int          `json:"totalFee"`
}

// HealthResponse is returned by liveness and readiness probes.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
