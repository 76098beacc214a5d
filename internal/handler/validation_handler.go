package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/k12-registration-api/internal/dto"
	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/service"
	"github.com/noah-isme/k12-registration-api/internal/validation"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
	"github.com/noah-isme/k12-registration-api/pkg/response"
)

// ValidationHandler runs a single field rule without a form session.
type ValidationHandler struct {
	clock   func() time.Time
	metrics *service.MetricsService
}

// NewValidationHandler constructs the handler. clock drives the age window.
func NewValidationHandler(clock func() time.Time, metrics *service.MetricsService) *ValidationHandler {
	if clock == nil {
		clock = time.Now
	}
	return &ValidationHandler{clock: clock, metrics: metrics}
}

// Validate godoc
// @Summary Validate one field value
// @Tags Validation
// @Accept json
// @Produce json
// @Param field path string true "Field name, e.g. guardianPhone"
// @Param payload body dto.FieldValueRequest true "Raw value"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /validate/{field} [post]
func (h *ValidationHandler) Validate(c *gin.Context) {
	field, ok := models.ParseField(c.Param("field"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrUnknownField, "unknown form field: "+c.Param("field")))
		return
	}
	var req dto.FieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	res := validation.Bindings(h.clock)[field](req.Value)
	if !res.Valid {
		h.metrics.RecordValidationFailures(models.FieldErrors{field: res.Reason})
	}
	response.JSON(c, http.StatusOK, dto.NewFieldValidationResponse(field, res), nil)
}
