package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/k12-registration-api/internal/models"
)

// ErrNotFound is returned when a registration does not exist.
var ErrNotFound = errors.New("registration not found")

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// ExportLimit caps the rows returned for roster exports.
	ExportLimit = 5000
)

const registrationColumns = `id, first_name, last_name, email, phone, date_of_birth, grade, guardian_name, guardian_phone, address, previous_school, medical_conditions, registered_at`

var registrationSorts = map[string]string{
	"registrationDate": "registered_at",
	"lastName":         "last_name",
	"grade":            "grade",
}

// RegistrationStore is implemented by the PostgreSQL and in-memory stores.
type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error)
	Export(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, error)
	Ping(ctx context.Context) error
}

var (
	_ RegistrationStore = (*RegistrationRepository)(nil)
	_ RegistrationStore = (*MemoryRegistrationRepository)(nil)
)

// RegistrationRepository persists registrations in PostgreSQL.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a registration exactly as submitted.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	const query = `INSERT INTO registrations (` + registrationColumns + `)
        VALUES (:id, :first_name, :last_name, :email, :phone, :date_of_birth, :grade, :guardian_name, :guardian_phone, :address, :previous_school, :medical_conditions, :registered_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reg); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// FindByID fetches a registration by ID.
func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

// List returns registrations matching the filter plus the total match count.
func (r *RegistrationRepository) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error) {
	where, args := registrationWhere(filter)
	page, size := normalizePage(filter.Page, filter.PageSize)
	column, order := registrationOrder(filter.SortBy, filter.SortOrder)

	query := fmt.Sprintf(`SELECT %s FROM registrations%s ORDER BY %s %s, id LIMIT %d OFFSET %d`,
		registrationColumns, where, column, order, size, (page-1)*size)
	regs := make([]models.Registration, 0)
	if err := r.db.SelectContext(ctx, &regs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM registrations"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}
	return regs, total, nil
}

// Export returns every matching registration ordered by name, up to ExportLimit.
func (r *RegistrationRepository) Export(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, error) {
	where, args := registrationWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM registrations%s ORDER BY last_name ASC, first_name ASC, id LIMIT %d`,
		registrationColumns, where, ExportLimit)
	regs := make([]models.Registration, 0)
	if err := r.db.SelectContext(ctx, &regs, query, args...); err != nil {
		return nil, fmt.Errorf("export registrations: %w", err)
	}
	return regs, nil
}

// Ping checks database connectivity for readiness probes.
func (r *RegistrationRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func registrationWhere(filter models.RegistrationFilter) (string, []interface{}) {
	args := []interface{}{}
	conditions := []string{}
	if filter.Grade != "" {
		args = append(args, string(filter.Grade))
		conditions = append(conditions, fmt.Sprintf("grade = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(email) LIKE $%d)", n, n, n))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func registrationOrder(sortBy, sortOrder string) (string, string) {
	column, ok := registrationSorts[sortBy]
	if !ok {
		column = "registered_at"
	}
	order := strings.ToUpper(sortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	return column, order
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return page, size
}
