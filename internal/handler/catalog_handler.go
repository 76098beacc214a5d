package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/k12-registration-api/internal/catalog"
	"github.com/noah-isme/k12-registration-api/internal/dto"
	"github.com/noah-isme/k12-registration-api/internal/models"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
	"github.com/noah-isme/k12-registration-api/pkg/response"
)

type gradeCatalog interface {
	Lookup(grade models.Grade) catalog.Entry
}

// CatalogHandler serves the grade reference tables.
type CatalogHandler struct {
	catalog gradeCatalog
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog gradeCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Grades godoc
// @Summary List grade bands
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/grades [get]
func (h *CatalogHandler) Grades(c *gin.Context) {
	out := make([]dto.GradeSummary, 0, len(models.Grades))
	for _, g := range models.Grades {
		summary := dto.GradeSummary{Grade: g}
		if fees := h.catalog.Lookup(g).Fees; fees != nil {
			summary.TotalFee = fees.Total
		}
		out = append(out, summary)
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// Grade godoc
// @Summary Fees, curriculum and schedule for a grade
// @Tags Catalog
// @Produce json
// @Param grade path string true "Grade band, e.g. Grade 6-8"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /catalog/grades/{grade} [get]
func (h *CatalogHandler) Grade(c *gin.Context) {
	grade := models.Grade(c.Param("grade"))
	if !grade.Valid() {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown grade"))
		return
	}
	response.JSON(c, http.StatusOK, h.catalog.Lookup(grade), nil)
}
