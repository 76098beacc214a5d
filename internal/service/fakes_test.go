package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/repository"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
)

var testNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func validRequestValues() map[models.Field]string {
	return map[models.Field]string{
		models.FieldFirstName:         "Amélie",
		models.FieldLastName:          "Tremblay",
		models.FieldEmail:             "parent@school.ca",
		models.FieldPhone:             "(416) 234-5678",
		models.FieldDateOfBirth:       "2016-04-02",
		models.FieldGrade:             string(models.Grade1To5),
		models.FieldGuardianName:      "Claire Tremblay",
		models.FieldGuardianPhone:     "416-234-5679",
		models.FieldAddress:           "12 Bloor St W, Toronto, ON M4W 1A8",
		models.FieldPreviousSchool:    "",
		models.FieldMedicalConditions: "",
	}
}

type fakeRegistrationRepo struct {
	*repository.MemoryRegistrationRepository
	createErr error
	findErr   error
	finds     int
	mu        sync.Mutex
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{MemoryRegistrationRepository: repository.NewMemoryRegistrationRepository()}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.MemoryRegistrationRepository.Create(ctx, reg)
}

func (f *fakeRegistrationRepo) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	f.mu.Lock()
	f.finds++
	f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.MemoryRegistrationRepository.FindByID(ctx, id)
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCacheRepo) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}
