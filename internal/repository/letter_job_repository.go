package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/k12-registration-api/internal/models"
)

// ErrLetterJobNotFound is returned when a letter job does not exist.
var ErrLetterJobNotFound = errors.New("letter job not found")

// LetterJobRepository tracks confirmation letter jobs in memory. Jobs are
// short-lived and regenerated on demand, so they are not persisted.
type LetterJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.LetterJob
}

// NewLetterJobRepository constructs an empty job store.
func NewLetterJobRepository() *LetterJobRepository {
	return &LetterJobRepository{jobs: make(map[string]models.LetterJob)}
}

// Create stores a new job.
func (r *LetterJobRepository) Create(_ context.Context, job *models.LetterJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = *job
	return nil
}

// GetByID returns a copy of the job.
func (r *LetterJobRepository) GetByID(_ context.Context, id string) (*models.LetterJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrLetterJobNotFound
	}
	return &job, nil
}

// Update applies fn to the stored job atomically.
func (r *LetterJobRepository) Update(_ context.Context, id string, fn func(*models.LetterJob)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return ErrLetterJobNotFound
	}
	fn(&job)
	r.jobs[id] = job
	return nil
}

// ListTerminalBefore returns finished or failed jobs last updated before cutoff, oldest first.
func (r *LetterJobRepository) ListTerminalBefore(_ context.Context, cutoff time.Time) ([]models.LetterJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.LetterJob, 0)
	for _, job := range r.jobs {
		if job.Status != models.LetterFinished && job.Status != models.LetterFailed {
			continue
		}
		if job.UpdatedAt.Before(cutoff) {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

// Delete removes a job record.
func (r *LetterJobRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	return nil
}
