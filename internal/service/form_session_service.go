package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/k12-registration-api/internal/form"
	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/validation"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
)

type registrationRecorder interface {
	Persist(ctx context.Context, reg models.Registration, channel string) error
	RecordRejection(errs models.FieldErrors, channel string)
}

// FormSessionConfig bounds the session store.
type FormSessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MaxSessions   int
}

type formSession struct {
	mu        sync.Mutex
	form      *form.Form
	expiresAt time.Time
}

// FormSessionService keeps in-progress registration forms keyed by id. Events
// for one form are applied one at a time; sessions expire after TTL without
// activity.
type FormSessionService struct {
	mu       sync.Mutex
	sessions map[string]*formSession

	registrations registrationRecorder
	metrics       *MetricsService
	logger        *zap.Logger
	cfg           FormSessionConfig
	now           func() time.Time
	newID         func() string
}

// NewFormSessionService constructs the session store.
func NewFormSessionService(registrations registrationRecorder, metrics *MetricsService, logger *zap.Logger, cfg FormSessionConfig) *FormSessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 10000
	}
	return &FormSessionService{
		sessions:      make(map[string]*formSession),
		registrations: registrations,
		metrics:       metrics,
		logger:        logger,
		cfg:           cfg,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Open starts an empty form in the editing state.
func (s *FormSessionService) Open(_ context.Context) (models.FormSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.cfg.MaxSessions {
		s.logger.Warn("form session limit reached", zap.Int("sessions", len(s.sessions)))
		return models.FormSnapshot{}, appErrors.Clone(appErrors.ErrFeatureOff, "too many open forms, try again later")
	}
	id := s.newID()
	sess := &formSession{
		form:      form.New(form.WithClock(s.now), form.WithIDGenerator(uuid.NewString)),
		expiresAt: s.now().Add(s.cfg.TTL),
	}
	s.sessions[id] = sess
	s.metrics.SetOpenForms(len(s.sessions))
	return snapshot(id, sess), nil
}

// Get returns the current state of a form.
func (s *FormSessionService) Get(_ context.Context, id string) (models.FormSnapshot, error) {
	var snap models.FormSnapshot
	err := s.with(id, false, func(sess *formSession) error {
		snap = snapshot(id, sess)
		return nil
	})
	return snap, err
}

// Change applies a change event.
func (s *FormSessionService) Change(_ context.Context, id, field, value string) (models.FormSnapshot, error) {
	var snap models.FormSnapshot
	err := s.with(id, true, func(sess *formSession) error {
		f, err := parseField(field)
		if err != nil {
			return err
		}
		if err := sess.form.Change(f, value); err != nil {
			return mapFormError(err)
		}
		snap = snapshot(id, sess)
		return nil
	})
	return snap, err
}

// Blur applies a blur event and returns the field verdict.
func (s *FormSessionService) Blur(_ context.Context, id, field string) (validation.Result, models.FormSnapshot, error) {
	var (
		res  validation.Result
		snap models.FormSnapshot
	)
	err := s.with(id, true, func(sess *formSession) error {
		f, err := parseField(field)
		if err != nil {
			return err
		}
		res, err = sess.form.Blur(f)
		if err != nil {
			return mapFormError(err)
		}
		snap = snapshot(id, sess)
		return nil
	})
	return res, snap, err
}

// Submit validates every field and, when clean, stores the registration.
// Field failures are returned as FieldErrors with a nil error.
func (s *FormSessionService) Submit(ctx context.Context, id string) (*models.Registration, models.FieldErrors, models.FormSnapshot, error) {
	var (
		record    *models.Registration
		fieldErrs models.FieldErrors
		snap      models.FormSnapshot
	)
	err := s.with(id, true, func(sess *formSession) error {
		var err error
		record, fieldErrs, err = sess.form.SubmitFunc(func(reg models.Registration) error {
			return s.registrations.Persist(ctx, reg, ChannelForm)
		})
		if err != nil {
			return mapFormError(err)
		}
		if len(fieldErrs) > 0 {
			s.registrations.RecordRejection(fieldErrs, ChannelForm)
		}
		snap = snapshot(id, sess)
		return nil
	})
	return record, fieldErrs, snap, err
}

// Sweep drops expired sessions and returns how many were removed.
func (s *FormSessionService) Sweep() int {
	now := s.now()

	// Never hold the store lock while taking a session lock.
	s.mu.Lock()
	candidates := make(map[string]*formSession, len(s.sessions))
	for id, sess := range s.sessions {
		candidates[id] = sess
	}
	s.mu.Unlock()

	expired := make([]string, 0)
	for id, sess := range candidates {
		sess.mu.Lock()
		if !now.Before(sess.expiresAt) {
			expired = append(expired, id)
		}
		sess.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for _, id := range expired {
		if s.sessions[id] == candidates[id] {
			delete(s.sessions, id)
			removed++
		}
	}
	s.metrics.SetOpenForms(len(s.sessions))
	return removed
}

// Len reports the number of held sessions.
func (s *FormSessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartSweeper removes expired sessions every SweepInterval until ctx is done.
func (s *FormSessionService) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Debug("expired form sessions removed", zap.Int("count", n))
				}
			}
		}
	}()
}

// with runs fn holding the session lock. Expired sessions are removed and
// reported as gone. touch extends the idle deadline.
func (s *FormSessionService) with(id string, touch bool, fn func(*formSession) error) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "form not found")
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	now := s.now()
	if !now.Before(sess.expiresAt) {
		// Lock order is session then store; Sweep never holds both.
		s.mu.Lock()
		if s.sessions[id] == sess {
			delete(s.sessions, id)
		}
		s.metrics.SetOpenForms(len(s.sessions))
		s.mu.Unlock()
		return appErrors.ErrSessionExpired
	}
	if touch {
		sess.expiresAt = now.Add(s.cfg.TTL)
	}
	return fn(sess)
}

func parseField(raw string) (models.Field, error) {
	f, ok := models.ParseField(raw)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrUnknownField, "unknown form field: "+raw)
	}
	return f, nil
}

func mapFormError(err error) error {
	switch {
	case errors.Is(err, form.ErrSubmitted):
		return appErrors.ErrFormSubmitted
	case errors.Is(err, form.ErrUnknownField):
		return appErrors.ErrUnknownField
	default:
		return err
	}
}

func snapshot(id string, sess *formSession) models.FormSnapshot {
	snap := models.FormSnapshot{
		ID:        id,
		State:     string(sess.form.State()),
		Values:    make(map[string]string, len(models.Fields)),
		Errors:    sess.form.Errors().Strings(),
		ExpiresAt: sess.expiresAt,
	}
	for field, value := range sess.form.Values() {
		snap.Values[string(field)] = value
	}
	if record, ok := sess.form.Record(); ok {
		snap.Record = &record
	}
	return snap
}
