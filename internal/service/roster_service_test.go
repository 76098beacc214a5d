package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/k12-registration-api/internal/models"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
)

func newTestRosterService(t *testing.T) (*RosterService, *fakeRegistrationRepo) {
	t.Helper()
	repo := newFakeRegistrationRepo()
	ctx := context.Background()
	for i, grade := range []models.Grade{models.Grade1To5, models.Grade6To8} {
		reg := models.NewRegistration([]string{"reg-a", "reg-b"}[i], validRequestValues(), testNow.Add(time.Duration(i)*time.Hour))
		reg.Grade = grade
		reg.MedicalConditions = "Peanut allergy"
		require.NoError(t, repo.MemoryRegistrationRepository.Create(ctx, &reg))
	}
	svc := NewRosterService(newTestRegistrationService(repo, nil, nil), nil, nil, nil)
	svc.now = testClock
	return svc, repo
}

func TestRosterServiceCSV(t *testing.T) {
	svc, _ := newTestRosterService(t)

	file, err := svc.Export(context.Background(), models.RegistrationFilter{Grade: models.Grade6To8}, "")
	require.NoError(t, err)
	assert.Equal(t, "registrations-20261015-100000.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	assert.Equal(t, 1, file.Rows)

	body := string(file.Body)
	assert.True(t, strings.HasPrefix(body, "ID,Last Name,First Name,Grade"))
	assert.Contains(t, body, "reg-b")
	assert.NotContains(t, body, "reg-a")
	assert.NotContains(t, body, "Peanut")
}

func TestRosterServicePDF(t *testing.T) {
	svc, _ := newTestRosterService(t)

	file, err := svc.Export(context.Background(), models.RegistrationFilter{}, RosterFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, 2, file.Rows)
	assert.True(t, strings.HasPrefix(string(file.Body), "%PDF"))
}

func TestRosterServiceRejectsUnknownFormat(t *testing.T) {
	svc, _ := newTestRosterService(t)

	_, err := svc.Export(context.Background(), models.RegistrationFilter{}, "xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
