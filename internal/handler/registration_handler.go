package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/k12-registration-api/internal/dto"
	"github.com/noah-isme/k12-registration-api/internal/models"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
	"github.com/noah-isme/k12-registration-api/pkg/response"
)

type registrationService interface {
	Register(ctx context.Context, values map[models.Field]string) (*models.Registration, models.FieldErrors, error)
	Get(ctx context.Context, id string) (*models.Registration, error)
}

// RegistrationHandler exposes one-shot registration and record reads.
type RegistrationHandler struct {
	registrations registrationService
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(registrations registrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Create godoc
// @Summary Register a student in one call
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body dto.RegistrationRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /registrations [post]
func (h *RegistrationHandler) Create(c *gin.Context) {
	var req dto.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	record, fieldErrs, err := h.registrations.Register(c.Request.Context(), req.Values())
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		response.FieldErrors(c, fieldErrs, nil)
		return
	}
	response.Created(c, record)
}

// Get godoc
// @Summary Get a registration
// @Tags Registrations
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registrations/{id} [get]
func (h *RegistrationHandler) Get(c *gin.Context) {
	record, err := h.registrations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}
