package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/repository"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
	"github.com/noah-isme/k12-registration-api/pkg/export"
	"github.com/noah-isme/k12-registration-api/pkg/jobs"
	"github.com/noah-isme/k12-registration-api/pkg/storage"
)

// JobKindLetter identifies confirmation letter jobs on the queue.
const JobKindLetter = "letter"

type letterJobStore interface {
	Create(ctx context.Context, job *models.LetterJob) error
	GetByID(ctx context.Context, id string) (*models.LetterJob, error)
	Update(ctx context.Context, id string, fn func(*models.LetterJob)) error
	ListTerminalBefore(ctx context.Context, cutoff time.Time) ([]models.LetterJob, error)
	Delete(ctx context.Context, id string) error
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type letterFiles interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (*os.File, error)
	Delete(name string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type tokenSigner interface {
	Generate(jobID, relPath string) (string, time.Time, error)
	Parse(token string) (storage.Claims, error)
	TTL() time.Duration
}

type letterRenderer interface {
	RenderLetter(letter export.Letter) ([]byte, error)
}

// LetterServiceConfig governs letter retention.
type LetterServiceConfig struct {
	CleanupInterval time.Duration
}

// LetterDownload is a resolved, ready to stream letter file.
type LetterDownload struct {
	File      *os.File
	Filename  string
	ExpiresAt time.Time
}

// LetterService manages confirmation letter jobs.
type LetterService struct {
	registrations registrationGetter
	repo          letterJobStore
	queue         jobDispatcher
	files         letterFiles
	signer        tokenSigner
	metrics       *MetricsService
	logger        *zap.Logger
	cfg           LetterServiceConfig
	now           func() time.Time
	newID         func() string
}

// NewLetterService constructs the letter service.
func NewLetterService(registrations registrationGetter, repo letterJobStore, queue jobDispatcher, files letterFiles, signer tokenSigner, metrics *MetricsService, logger *zap.Logger, cfg LetterServiceConfig) *LetterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LetterService{
		registrations: registrations,
		repo:          repo,
		queue:         queue,
		files:         files,
		signer:        signer,
		metrics:       metrics,
		logger:        logger,
		cfg:           cfg,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Request queues a letter for an existing registration.
func (s *LetterService) Request(ctx context.Context, registrationID string) (*models.LetterJob, error) {
	if _, err := s.registrations.Get(ctx, registrationID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	job := &models.LetterJob{
		ID:             s.newID(),
		RegistrationID: registrationID,
		Status:         models.LetterQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create letter job")
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Kind: JobKindLetter, EnqueuedAt: now}); err != nil {
		msg := "failed to enqueue job"
		_ = s.repo.Update(ctx, job.ID, func(j *models.LetterJob) {
			j.Status = models.LetterFailed
			j.Error = msg
			j.UpdatedAt = s.now().UTC()
		})
		s.metrics.RecordLetterJob(models.LetterFailed)
		if errors.Is(err, jobs.ErrFull) {
			return nil, appErrors.Wrap(err, appErrors.ErrFeatureOff.Code, appErrors.ErrFeatureOff.Status, "letter queue is busy, try again later")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue letter job")
	}
	s.metrics.RecordLetterJob(models.LetterQueued)
	s.logger.Info("letter job queued", zap.String("job_id", job.ID), zap.String("registration_id", registrationID))
	out := *job
	return &out, nil
}

// Status returns job metadata.
func (s *LetterService) Status(ctx context.Context, jobID string) (*models.LetterJob, error) {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrLetterJobNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "letter job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load letter job")
	}
	return job, nil
}

// ResolveDownload validates a download token and opens the letter file.
func (s *LetterService) ResolveDownload(ctx context.Context, token string) (*LetterDownload, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	job, err := s.Status(ctx, claims.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.LetterFinished {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "letter not ready")
	}
	if job.FilePath != claims.Path || !strings.HasSuffix(job.DownloadURL, token) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}
	file, err := s.files.Open(claims.Path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "letter file no longer available")
	}
	return &LetterDownload{
		File:      file,
		Filename:  "confirmation-" + job.RegistrationID + ".pdf",
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// StartCleanup purges expired letters every CleanupInterval until ctx is done.
func (s *LetterService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup(ctx)
			}
		}
	}()
}

// Cleanup deletes terminal jobs older than the download TTL along with their
// files, then sweeps stray files on disk.
func (s *LetterService) Cleanup(ctx context.Context) int {
	ttl := s.signer.TTL()
	expired, err := s.repo.ListTerminalBefore(ctx, s.now().Add(-ttl))
	if err != nil {
		s.logger.Warn("letter cleanup list failed", zap.Error(err))
		return 0
	}
	for _, job := range expired {
		if job.FilePath != "" {
			if err := s.files.Delete(job.FilePath); err != nil {
				s.logger.Warn("letter cleanup delete failed", zap.String("job_id", job.ID), zap.Error(err))
				continue
			}
		}
		_ = s.repo.Delete(ctx, job.ID)
	}
	if _, err := s.files.CleanupOlderThan(ttl); err != nil {
		s.logger.Warn("letter storage cleanup failed", zap.Error(err))
	}
	if len(expired) > 0 {
		s.logger.Debug("expired letters removed", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// LetterWorker renders queued letters.
type LetterWorker struct {
	repo          letterJobStore
	registrations registrationGetter
	catalog       gradeLookup
	renderer      letterRenderer
	files         letterFiles
	signer        tokenSigner
	metrics       *MetricsService
	logger        *zap.Logger
	schoolName    string
	downloadPath  string
}

// LetterWorkerConfig holds presentation settings for the worker.
type LetterWorkerConfig struct {
	SchoolName   string
	DownloadPath string
}

// NewLetterWorker constructs a worker.
func NewLetterWorker(repo letterJobStore, registrations registrationGetter, lookup gradeLookup, renderer letterRenderer, files letterFiles, signer tokenSigner, metrics *MetricsService, logger *zap.Logger, cfg LetterWorkerConfig) *LetterWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SchoolName == "" {
		cfg.SchoolName = "Brightfield Academy"
	}
	return &LetterWorker{
		repo:          repo,
		registrations: registrations,
		catalog:       lookup,
		renderer:      renderer,
		files:         files,
		signer:        signer,
		metrics:       metrics,
		logger:        logger,
		schoolName:    cfg.SchoolName,
		downloadPath:  cfg.DownloadPath,
	}
}

// Handle processes a queue job. Errors are returned so the queue can retry.
func (w *LetterWorker) Handle(ctx context.Context, job jobs.Job) error {
	record, err := w.repo.GetByID(ctx, job.ID)
	if err != nil {
		return err
	}
	if err := w.repo.Update(ctx, job.ID, func(j *models.LetterJob) {
		j.Status = models.LetterProcessing
		j.Attempts = job.Attempt + 1
		j.UpdatedAt = time.Now().UTC()
	}); err != nil {
		return err
	}

	relPath, err := w.render(ctx, record)
	if err != nil {
		msg := err.Error()
		_ = w.repo.Update(ctx, job.ID, func(j *models.LetterJob) {
			j.Status = models.LetterQueued
			j.Error = msg
			j.UpdatedAt = time.Now().UTC()
		})
		return err
	}

	token, expiresAt, err := w.signer.Generate(job.ID, relPath)
	if err != nil {
		return fmt.Errorf("sign download url: %w", err)
	}
	if err := w.repo.Update(ctx, job.ID, func(j *models.LetterJob) {
		j.Status = models.LetterFinished
		j.Error = ""
		j.FilePath = relPath
		j.DownloadURL = w.downloadPath + "?token=" + token
		j.ExpiresAt = &expiresAt
		j.UpdatedAt = time.Now().UTC()
	}); err != nil {
		w.logger.Warn("failed to mark letter finished", zap.String("job_id", job.ID), zap.Error(err))
		return err
	}
	w.metrics.RecordLetterJob(models.LetterFinished)
	w.logger.Info("letter generated", zap.String("job_id", job.ID), zap.String("registration_id", record.RegistrationID))
	return nil
}

// MarkFailed records a job that exhausted its retries.
func (w *LetterWorker) MarkFailed(job jobs.Job, cause error) {
	msg := "letter generation failed"
	if cause != nil {
		msg = cause.Error()
	}
	if err := w.repo.Update(context.Background(), job.ID, func(j *models.LetterJob) {
		j.Status = models.LetterFailed
		j.Error = msg
		j.UpdatedAt = time.Now().UTC()
	}); err != nil {
		w.logger.Warn("failed to mark letter failed", zap.String("job_id", job.ID), zap.Error(err))
	}
	w.metrics.RecordLetterJob(models.LetterFailed)
}

func (w *LetterWorker) render(ctx context.Context, job *models.LetterJob) (string, error) {
	reg, err := w.registrations.Get(ctx, job.RegistrationID)
	if err != nil {
		return "", err
	}
	data, err := w.renderer.RenderLetter(w.compose(reg))
	if err != nil {
		return "", fmt.Errorf("render letter: %w", err)
	}
	return w.files.Save(job.ID+".pdf", data)
}

func (w *LetterWorker) compose(reg *models.Registration) export.Letter {
	entry := w.catalog.Lookup(reg.Grade)
	letter := export.Letter{
		Heading:    "Registration Complete",
		Subheading: w.schoolName,
		Paragraphs: []string{
			fmt.Sprintf("Welcome, %s!", reg.FirstName),
			fmt.Sprintf("Your journey at %s begins now.", w.schoolName),
		},
		Footer: "Registered on " + reg.RegisteredAt.Format("January 2, 2006"),
	}

	student := export.Section{Title: "Student", Lines: []export.Line{
		{Label: "Name", Value: reg.FirstName + " " + reg.LastName},
		{Label: "Date of birth", Value: reg.DateOfBirth},
		{Label: "Grade", Value: string(reg.Grade)},
		{Label: "Email", Value: reg.Email},
		{Label: "Phone", Value: reg.Phone},
		{Label: "Guardian", Value: reg.GuardianName},
		{Label: "Guardian phone", Value: reg.GuardianPhone},
		{Label: "Address", Value: reg.Address},
	}}
	if reg.PreviousSchool != "" {
		student.Lines = append(student.Lines, export.Line{Label: "Previous school", Value: reg.PreviousSchool})
	}
	letter.Sections = append(letter.Sections, student)

	if fees := entry.Fees; fees != nil {
		letter.Sections = append(letter.Sections, export.Section{Title: "Annual fees", Lines: []export.Line{
			{Label: "Tuition", Value: dollars(fees.TuitionFee)},
			{Label: "Admission", Value: dollars(fees.AdmissionFee)},
			{Label: "Books", Value: dollars(fees.BooksFee)},
			{Label: "Uniform", Value: dollars(fees.UniformFee)},
			{Label: "Transport", Value: dollars(fees.TransportFee)},
			{Label: "Total", Value: dollars(fees.Total)},
		}})
	}
	if curr := entry.Curriculum; curr != nil {
		sec := export.Section{Title: "Curriculum"}
		for _, subj := range curr.Subjects {
			sec.Lines = append(sec.Lines, export.Line{Label: subj.Name, Value: fmt.Sprintf("%d hrs/week", subj.HoursPerWeek)})
		}
		sec.Lines = append(sec.Lines, export.Line{Label: "Total", Value: fmt.Sprintf("%d hrs/week", curr.TotalHours)})
		letter.Sections = append(letter.Sections, sec)
	}
	if sched := entry.Schedule; sched != nil {
		letter.Sections = append(letter.Sections, export.Section{Title: "Daily schedule", Lines: []export.Line{
			{Label: "School day", Value: sched.StartTime + " - " + sched.EndTime},
			{Label: "Lunch", Value: sched.LunchBreak},
			{Label: "Periods", Value: fmt.Sprintf("%d", len(sched.Periods))},
		}})
	}
	return letter
}

// dollars formats whole dollars with thousands separators.
func dollars(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}
