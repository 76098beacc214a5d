package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/noah-isme/k12-registration-api/internal/models"
)

// MemoryRegistrationRepository keeps registrations in process memory. It is
// used when no database is configured.
type MemoryRegistrationRepository struct {
	mu    sync.RWMutex
	table map[string]models.Registration
}

// NewMemoryRegistrationRepository constructs an empty in-memory store.
func NewMemoryRegistrationRepository() *MemoryRegistrationRepository {
	return &MemoryRegistrationRepository{table: make(map[string]models.Registration)}
}

// Create stores a copy of the registration.
func (r *MemoryRegistrationRepository) Create(_ context.Context, reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.table[reg.ID]; exists {
		return fmt.Errorf("create registration: duplicate id %s", reg.ID)
	}
	r.table[reg.ID] = *reg
	return nil
}

// FindByID returns a copy of the stored registration.
func (r *MemoryRegistrationRepository) FindByID(_ context.Context, id string) (*models.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.table[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &reg, nil
}

// List applies the same filtering, ordering and paging as the SQL store.
func (r *MemoryRegistrationRepository) List(_ context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error) {
	matches := r.query(filter)
	column, order := registrationOrder(filter.SortBy, filter.SortOrder)
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := sortKey(matches[i], column), sortKey(matches[j], column)
		if a == b {
			return matches[i].ID < matches[j].ID
		}
		if order == "ASC" {
			return a < b
		}
		return a > b
	})

	page, size := normalizePage(filter.Page, filter.PageSize)
	total := len(matches)
	start := (page - 1) * size
	if start >= total {
		return []models.Registration{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

// Export returns every matching registration ordered by name.
func (r *MemoryRegistrationRepository) Export(_ context.Context, filter models.RegistrationFilter) ([]models.Registration, error) {
	matches := r.query(filter)
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	if len(matches) > ExportLimit {
		matches = matches[:ExportLimit]
	}
	return matches, nil
}

// Ping always succeeds.
func (r *MemoryRegistrationRepository) Ping(context.Context) error {
	return nil
}

func (r *MemoryRegistrationRepository) query(filter models.RegistrationFilter) []models.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Registration, 0, len(r.table))
	for _, reg := range r.table {
		if filter.Grade != "" && reg.Grade != filter.Grade {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(reg.FirstName), search) &&
			!strings.Contains(strings.ToLower(reg.LastName), search) &&
			!strings.Contains(strings.ToLower(reg.Email), search) {
			continue
		}
		out = append(out, reg)
	}
	return out
}

func sortKey(reg models.Registration, column string) string {
	switch column {
	case "last_name":
		return reg.LastName
	case "grade":
		return string(reg.Grade)
	default:
		return reg.RegisteredAt.UTC().Format("2006-01-02T15:04:05.000000000")
	}
}
