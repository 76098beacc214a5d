package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/k12-registration-api/internal/dto"
	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/validation"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
	"github.com/noah-isme/k12-registration-api/pkg/response"
)

type formSessions interface {
	Open(ctx context.Context) (models.FormSnapshot, error)
	Get(ctx context.Context, id string) (models.FormSnapshot, error)
	Change(ctx context.Context, id, field, value string) (models.FormSnapshot, error)
	Blur(ctx context.Context, id, field string) (validation.Result, models.FormSnapshot, error)
	Submit(ctx context.Context, id string) (*models.Registration, models.FieldErrors, models.FormSnapshot, error)
}

// FormHandler drives registration forms through change, blur and submit events.
type FormHandler struct {
	forms formSessions
}

// NewFormHandler constructs the handler.
func NewFormHandler(forms formSessions) *FormHandler {
	return &FormHandler{forms: forms}
}

// Open godoc
// @Summary Start a registration form
// @Tags Forms
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /forms [post]
func (h *FormHandler) Open(c *gin.Context) {
	snap, err := h.forms.Open(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, snap)
}

// Get godoc
// @Summary Current form state
// @Tags Forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} response.Envelope
// @Router /forms/{id} [get]
func (h *FormHandler) Get(c *gin.Context) {
	snap, err := h.forms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// Change godoc
// @Summary Change a field value
// @Description Stores the value and clears the field error without validating.
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param field path string true "Field name"
// @Param payload body dto.FieldValueRequest true "New value"
// @Success 200 {object} response.Envelope
// @Router /forms/{id}/fields/{field} [patch]
func (h *FormHandler) Change(c *gin.Context) {
	var req dto.FieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	snap, err := h.forms.Change(c.Request.Context(), c.Param("id"), c.Param("field"), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// Blur godoc
// @Summary Leave a field
// @Description Validates the field's current value and records the verdict.
// @Tags Forms
// @Produce json
// @Param id path string true "Form ID"
// @Param field path string true "Field name"
// @Success 200 {object} response.Envelope
// @Router /forms/{id}/fields/{field}/blur [post]
func (h *FormHandler) Blur(c *gin.Context) {
	res, snap, err := h.forms.Blur(c.Request.Context(), c.Param("id"), c.Param("field"))
	if err != nil {
		response.Error(c, err)
		return
	}
	field, _ := models.ParseField(c.Param("field"))
	response.JSON(c, http.StatusOK, dto.BlurResponse{
		FieldValidationResponse: dto.NewFieldValidationResponse(field, res),
		Form:                    snap,
	}, nil)
}

// Submit godoc
// @Summary Submit a form
// @Tags Forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /forms/{id}/submit [post]
func (h *FormHandler) Submit(c *gin.Context) {
	record, fieldErrs, snap, err := h.forms.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		response.FieldErrors(c, fieldErrs, snap)
		return
	}
	response.Created(c, record)
}
