package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/k12-registration-api/internal/form"
	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/repository"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
)

type registrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error)
	Export(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, error)
}

// RegistrationService validates, stores and reads student registrations.
type RegistrationService struct {
	repo    registrationRepository
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewRegistrationService constructs the registration service.
func NewRegistrationService(repo registrationRepository, metrics *MetricsService, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, metrics: metrics, logger: logger, now: time.Now, newID: uuid.NewString}
}

// Clock returns the clock used for age checks and timestamps.
func (s *RegistrationService) Clock() func() time.Time {
	return s.now
}

// Register validates a complete payload the way a form submit does and stores
// the record. Field failures come back as FieldErrors with a nil error.
func (s *RegistrationService) Register(ctx context.Context, values map[models.Field]string) (*models.Registration, models.FieldErrors, error) {
	f := form.New(form.WithClock(s.now), form.WithIDGenerator(s.newID))
	for _, field := range models.Fields {
		if err := f.Change(field, values[field]); err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build registration")
		}
	}
	record, fieldErrs, err := f.SubmitFunc(func(reg models.Registration) error {
		return s.Persist(ctx, reg, ChannelDirect)
	})
	if err != nil {
		return nil, nil, err
	}
	if len(fieldErrs) > 0 {
		s.RecordRejection(fieldErrs, ChannelDirect)
		return nil, fieldErrs, nil
	}
	return record, nil, nil
}

// Persist stores an already validated record.
func (s *RegistrationService) Persist(ctx context.Context, reg models.Registration, channel string) error {
	if err := s.repo.Create(ctx, &reg); err != nil {
		s.logger.Error("failed to store registration", zap.String("registration_id", reg.ID), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store registration")
	}
	s.metrics.RecordRegistration(channel)
	s.logger.Info("registration stored",
		zap.String("registration_id", reg.ID),
		zap.String("grade", string(reg.Grade)),
		zap.String("channel", channel),
	)
	return nil
}

// RecordRejection logs and counts a failed submit. Only field names are
// logged; values are personal data.
func (s *RegistrationService) RecordRejection(errs models.FieldErrors, channel string) {
	s.metrics.RecordValidationFailures(errs)
	fields := make([]string, 0, len(errs))
	for _, f := range models.Fields {
		if errs.Has(f) {
			fields = append(fields, string(f))
		}
	}
	s.logger.Debug("registration rejected", zap.Strings("fields", fields), zap.String("channel", channel))
}

// Get returns a stored registration.
func (s *RegistrationService) Get(ctx context.Context, id string) (*models.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}
	return reg, nil
}

// List returns registrations and pagination metadata.
func (s *RegistrationService) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, *models.Pagination, error) {
	regs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return regs, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Export returns every registration matching the filter.
func (s *RegistrationService) Export(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, error) {
	regs, err := s.repo.Export(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export registrations")
	}
	return regs, nil
}
