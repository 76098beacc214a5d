package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/k12-registration-api/internal/catalog"
	"github.com/noah-isme/k12-registration-api/internal/models"
)

const dashboardCachePrefix = "dashboard:"

type registrationGetter interface {
	Get(ctx context.Context, id string) (*models.Registration, error)
}

type gradeLookup interface {
	Lookup(grade models.Grade) catalog.Entry
}

// DashboardService assembles the post-registration summary.
type DashboardService struct {
	registrations registrationGetter
	catalog       gradeLookup
	cache         *CacheService
	ttl           time.Duration
	logger        *zap.Logger
}

// NewDashboardService constructs the dashboard service. A nil cache disables caching.
func NewDashboardService(registrations registrationGetter, lookup gradeLookup, cache *CacheService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{registrations: registrations, catalog: lookup, cache: cache, ttl: ttl, logger: logger}
}

// Get returns the dashboard for a registration and whether it came from cache.
// A grade without table rows yields nil sections rather than an error.
func (s *DashboardService) Get(ctx context.Context, registrationID string) (*models.Dashboard, bool, error) {
	key := dashboardCachePrefix + registrationID
	var cached models.Dashboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	reg, err := s.registrations.Get(ctx, registrationID)
	if err != nil {
		return nil, false, err
	}
	entry := s.catalog.Lookup(reg.Grade)
	if entry.Fees == nil || entry.Curriculum == nil || entry.Schedule == nil {
		s.logger.Warn("grade reference data incomplete", zap.String("grade", string(reg.Grade)))
	}
	dashboard := &models.Dashboard{
		Registration: *reg,
		Fees:         entry.Fees,
		Curriculum:   entry.Curriculum,
		Schedule:     entry.Schedule,
	}
	s.cache.Set(ctx, key, dashboard, s.ttl)
	return dashboard, false, nil
}
