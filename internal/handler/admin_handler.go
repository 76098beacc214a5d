package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/k12-registration-api/internal/dto"
	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/service"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
	"github.com/noah-isme/k12-registration-api/pkg/response"
)

type registrationLister interface {
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, *models.Pagination, error)
}

type rosterExporter interface {
	Export(ctx context.Context, filter models.RegistrationFilter, format string) (*service.RosterFile, error)
}

type queryValidator interface {
	Struct(s interface{}) (map[string]string, error)
}

// AdminHandler serves the staff roster. Routes sit behind JWT and RequireRoles.
type AdminHandler struct {
	registrations registrationLister
	roster        rosterExporter
	validator     queryValidator
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(registrations registrationLister, roster rosterExporter, validator queryValidator) *AdminHandler {
	return &AdminHandler{registrations: registrations, roster: roster, validator: validator}
}

// List godoc
// @Summary List registrations
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param grade query string false "Grade band"
// @Param search query string false "Name or email search"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Param sort_by query string false "registrationDate, lastName or grade"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /admin/registrations [get]
func (h *AdminHandler) List(c *gin.Context) {
	query, ok := h.bind(c)
	if !ok {
		return
	}
	regs, pagination, err := h.registrations.List(c.Request.Context(), query.Filter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, regs, pagination)
}

// Export godoc
// @Summary Export the registration roster
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Param grade query string false "Grade band"
// @Success 200 {file} binary
// @Router /admin/registrations/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	query, ok := h.bind(c)
	if !ok {
		return
	}
	file, err := h.roster.Export(c.Request.Context(), query.Filter(), query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func (h *AdminHandler) bind(c *gin.Context) (dto.RosterQuery, bool) {
	var query dto.RosterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return query, false
	}
	if h.validator != nil {
		details, err := h.validator.Struct(query)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate query"))
			return query, false
		}
		if len(details) > 0 {
			response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, details))
			return query, false
		}
	}
	return query, true
}
