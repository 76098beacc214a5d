package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/k12-registration-api/internal/models"
)

var registrationRowColumns = []string{"id", "first_name", "last_name", "email", "phone", "date_of_birth", "grade", "guardian_name", "guardian_phone", "address", "previous_school", "medical_conditions", "registered_at"}

func newRegistrationMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sampleRegistration() models.Registration {
	return models.Registration{
		ID:            "7b0b7a53-1f7e-4c55-9f3c-1a4d2b9c0e11",
		FirstName:     "Amélie",
		LastName:      "O'Connor",
		Email:         "amelie@example.ca",
		Phone:         "(416) 234-5678",
		DateOfBirth:   "2016-04-02",
		Grade:         models.Grade1To5,
		GuardianName:  "Claire O'Connor",
		GuardianPhone: "416-234-5679",
		Address:       "12 Bloor St W, Toronto, ON M4W 1A8",
		RegisteredAt:  time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC),
	}
}

func registrationRow(reg models.Registration) *sqlmock.Rows {
	return sqlmock.NewRows(registrationRowColumns).AddRow(
		reg.ID, reg.FirstName, reg.LastName, reg.Email, reg.Phone, reg.DateOfBirth, string(reg.Grade),
		reg.GuardianName, reg.GuardianPhone, reg.Address, reg.PreviousSchool, reg.MedicalConditions, reg.RegisteredAt,
	)
}

func TestRegistrationRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRegistrationMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)
	reg := sampleRegistration()

	mock.ExpectExec("INSERT INTO registrations").
		WithArgs(reg.ID, reg.FirstName, reg.LastName, reg.Email, reg.Phone, reg.DateOfBirth, reg.Grade,
			reg.GuardianName, reg.GuardianPhone, reg.Address, "", "", reg.RegisteredAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), &reg))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRegistrationMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)
	reg := sampleRegistration()

	mock.ExpectQuery(regexp.QuoteMeta("FROM registrations WHERE id = $1")).
		WithArgs(reg.ID).
		WillReturnRows(registrationRow(reg))

	found, err := repo.FindByID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg, *found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRegistrationMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM registrations WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistrationRepositoryList(t *testing.T) {
	db, mock, cleanup := newRegistrationMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)
	reg := sampleRegistration()

	mock.ExpectQuery(regexp.QuoteMeta("FROM registrations WHERE grade = $1 AND (LOWER(first_name) LIKE $2 OR LOWER(last_name) LIKE $2 OR LOWER(email) LIKE $2) ORDER BY last_name ASC, id LIMIT 10 OFFSET 10")).
		WithArgs("Grade 1-5", "%conn%").
		WillReturnRows(registrationRow(reg))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM registrations WHERE grade = $1")).
		WithArgs("Grade 1-5", "%conn%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	regs, total, err := repo.List(context.Background(), models.RegistrationFilter{
		Grade: models.Grade1To5, Search: " Conn ", Page: 2, PageSize: 10, SortBy: "lastName", SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.Len(t, regs, 1)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryListDefaults(t *testing.T) {
	db, mock, cleanup := newRegistrationMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM registrations ORDER BY registered_at DESC, id LIMIT 20 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(registrationRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM registrations")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	regs, total, err := repo.List(context.Background(), models.RegistrationFilter{SortBy: "email; DROP TABLE", PageSize: 1000})
	require.NoError(t, err)
	assert.Empty(t, regs)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryExport(t *testing.T) {
	db, mock, cleanup := newRegistrationMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM registrations WHERE grade = $1 ORDER BY last_name ASC, first_name ASC, id LIMIT 5000")).
		WithArgs("Grade 1-5").
		WillReturnRows(registrationRow(sampleRegistration()))

	regs, err := repo.Export(context.Background(), models.RegistrationFilter{Grade: models.Grade1To5})
	require.NoError(t, err)
	assert.Len(t, regs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
