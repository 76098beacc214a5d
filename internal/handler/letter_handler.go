package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/service"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
	"github.com/noah-isme/k12-registration-api/pkg/response"
)

type letterService interface {
	Request(ctx context.Context, registrationID string) (*models.LetterJob, error)
	Status(ctx context.Context, jobID string) (*models.LetterJob, error)
	ResolveDownload(ctx context.Context, token string) (*service.LetterDownload, error)
}

// LetterHandler exposes confirmation letter jobs. A nil service means the
// feature is switched off.
type LetterHandler struct {
	service letterService
}

// NewLetterHandler constructs the handler.
func NewLetterHandler(service letterService) *LetterHandler {
	return &LetterHandler{service: service}
}

// Request godoc
// @Summary Queue a confirmation letter
// @Tags Letters
// @Produce json
// @Param id path string true "Registration ID"
// @Success 202 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /registrations/{id}/letter [post]
func (h *LetterHandler) Request(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrFeatureOff, "confirmation letters are disabled"))
		return
	}
	job, err := h.service.Request(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// Status godoc
// @Summary Letter job status
// @Tags Letters
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /letters/{jobId} [get]
func (h *LetterHandler) Status(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrFeatureOff, "confirmation letters are disabled"))
		return
	}
	job, err := h.service.Status(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download godoc
// @Summary Download a confirmation letter via signed token
// @Tags Letters
// @Produce application/pdf
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /letters/download [get]
func (h *LetterHandler) Download(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrFeatureOff, "confirmation letters are disabled"))
		return
	}
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	result, err := h.service.ResolveDownload(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer result.File.Close() //nolint:errcheck
	info, err := result.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read letter"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), "application/pdf", result.File, nil)
}
