package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/service"
	"github.com/noah-isme/k12-registration-api/internal/validation"
)

type fakeRoster struct {
	regs       []models.Registration
	pagination *models.Pagination
	file       *service.RosterFile
	filter     models.RegistrationFilter
	format     string
}

func (f *fakeRoster) List(_ context.Context, filter models.RegistrationFilter) ([]models.Registration, *models.Pagination, error) {
	f.filter = filter
	return f.regs, f.pagination, nil
}

func (f *fakeRoster) Export(_ context.Context, filter models.RegistrationFilter, format string) (*service.RosterFile, error) {
	f.filter = filter
	f.format = format
	return f.file, nil
}

func newTestAdminHandler(roster *fakeRoster) *AdminHandler {
	return NewAdminHandler(roster, roster, validation.NewStructValidator())
}

func TestAdminHandlerList(t *testing.T) {
	roster := &fakeRoster{
		regs:       []models.Registration{{ID: "reg-1"}},
		pagination: &models.Pagination{Page: 2, PageSize: 10, TotalCount: 11},
	}
	c, w := newGinContext(http.MethodGet, "/admin/registrations?grade=Grade+6-8&page=2&page_size=10&sort_by=lastName&sort_order=asc", nil)

	newTestAdminHandler(roster).List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Grade6To8, roster.filter.Grade)
	assert.Equal(t, 2, roster.filter.Page)
	assert.Equal(t, "lastName", roster.filter.SortBy)
	env := decode(t, w)
	assert.Equal(t, float64(11), env.Pagination["total_count"])
}

func TestAdminHandlerListRejectsBadQuery(t *testing.T) {
	c, w := newGinContext(http.MethodGet, "/admin/registrations?grade=Grade+13&sort_by=email", nil)

	newTestAdminHandler(&fakeRoster{}).List(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decode(t, w).Error.Details
	assert.Equal(t, validation.ReasonGradeUnknown, details["grade"])
	assert.Contains(t, details, "sort_by")
}

func TestAdminHandlerListRejectsNonNumericPage(t *testing.T) {
	c, w := newGinContext(http.MethodGet, "/admin/registrations?page=two", nil)

	newTestAdminHandler(&fakeRoster{}).List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandlerExport(t *testing.T) {
	roster := &fakeRoster{file: &service.RosterFile{
		Filename:    "registrations-20261015-100000.csv",
		ContentType: "text/csv; charset=utf-8",
		Body:        []byte("ID,Last Name\n"),
	}}
	c, w := newGinContext(http.MethodGet, "/admin/registrations/export?format=csv&grade=Kindergarten", nil)

	newTestAdminHandler(roster).Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", roster.format)
	assert.Equal(t, models.GradeKindergarten, roster.filter.Grade)
	assert.Equal(t, `attachment; filename="registrations-20261015-100000.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID,Last Name\n", w.Body.String())
}

func TestAdminHandlerExportRejectsFormat(t *testing.T) {
	c, w := newGinContext(http.MethodGet, "/admin/registrations/export?format=xlsx", nil)

	newTestAdminHandler(&fakeRoster{}).Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error.Details, "format")
}
