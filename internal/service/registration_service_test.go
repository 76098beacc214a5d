package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/validation"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
)

func newTestRegistrationService(repo *fakeRegistrationRepo, metrics *MetricsService, logger *zap.Logger) *RegistrationService {
	svc := NewRegistrationService(repo, metrics, logger)
	svc.now = testClock
	svc.newID = func() string { return "reg-1" }
	return svc
}

func TestRegistrationServiceRegister(t *testing.T) {
	repo := newFakeRegistrationRepo()
	metrics := NewMetricsService()
	svc := newTestRegistrationService(repo, metrics, nil)

	values := validRequestValues()
	values[models.FieldEmail] = " parent@school.ca "
	reg, errs, err := svc.Register(context.Background(), values)
	require.NoError(t, err)
	assert.Nil(t, errs)
	require.NotNil(t, reg)
	assert.Equal(t, "reg-1", reg.ID)
	assert.Equal(t, " parent@school.ca ", reg.Email)
	assert.Equal(t, testNow, reg.RegisteredAt)

	stored, err := svc.Get(context.Background(), "reg-1")
	require.NoError(t, err)
	assert.Equal(t, *reg, *stored)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.registrations.WithLabelValues(ChannelDirect)))
}

func TestRegistrationServiceRegisterRejectsAndLogsFieldNamesOnly(t *testing.T) {
	repo := newFakeRegistrationRepo()
	metrics := NewMetricsService()
	core, logs := observer.New(zapcore.DebugLevel)
	svc := newTestRegistrationService(repo, metrics, zap.New(core))

	values := validRequestValues()
	values[models.FieldLastName] = "Tremblay2"
	values[models.FieldPhone] = "555"
	reg, errs, err := svc.Register(context.Background(), values)
	require.NoError(t, err)
	assert.Nil(t, reg)
	assert.Equal(t, validation.ReasonNameDigits, errs[models.FieldLastName])
	assert.Equal(t, validation.ReasonPhoneTooShort, errs[models.FieldPhone])
	assert.Len(t, errs, 2)

	_, total, _ := repo.List(context.Background(), models.RegistrationFilter{})
	assert.Zero(t, total)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.validationFailures.WithLabelValues("lastName")))

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, []interface{}{"lastName", "phone"}, ctx["fields"])
	for _, v := range ctx {
		assert.NotContains(t, v, "Tremblay2")
	}
}

func TestRegistrationServiceRegisterStoreFailure(t *testing.T) {
	repo := newFakeRegistrationRepo()
	repo.createErr = errors.New("db down")
	svc := newTestRegistrationService(repo, nil, nil)

	_, _, err := svc.Register(context.Background(), validRequestValues())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}

func TestRegistrationServiceGetNotFound(t *testing.T) {
	svc := newTestRegistrationService(newFakeRegistrationRepo(), nil, nil)
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestRegistrationServiceListPagination(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo, nil, nil)
	_, _, err := svc.Register(context.Background(), validRequestValues())
	require.NoError(t, err)

	regs, page, err := svc.List(context.Background(), models.RegistrationFilter{PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, regs, 1)
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, page)

	exported, err := svc.Export(context.Background(), models.RegistrationFilter{Grade: models.Grade6To8})
	require.NoError(t, err)
	assert.Empty(t, exported)
}
