package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/k12-registration-api/internal/catalog"
	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/repository"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
	"github.com/noah-isme/k12-registration-api/pkg/export"
	"github.com/noah-isme/k12-registration-api/pkg/jobs"
	"github.com/noah-isme/k12-registration-api/pkg/storage"
)

type fakeQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *fakeQueue) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type failingRenderer struct{}

func (failingRenderer) RenderLetter(export.Letter) ([]byte, error) {
	return nil, errors.New("font missing")
}

type letterFixture struct {
	reg     models.Registration
	jobs    *repository.LetterJobRepository
	queue   *fakeQueue
	dir     string
	metrics *MetricsService
	service *LetterService
	worker  *LetterWorker
}

func newLetterFixture(t *testing.T, renderer letterRenderer) *letterFixture {
	t.Helper()
	regRepo := newFakeRegistrationRepo()
	reg := seedRegistration(t, regRepo, models.Grade1To5)
	registrations := newTestRegistrationService(regRepo, nil, nil)

	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("letter-secret", 24*time.Hour)
	jobRepo := repository.NewLetterJobRepository()
	queue := &fakeQueue{}
	metrics := NewMetricsService()

	svc := NewLetterService(registrations, jobRepo, queue, files, signer, metrics, nil, LetterServiceConfig{})
	svc.newID = func() string { return "job-1" }
	if renderer == nil {
		renderer = export.NewPDFExporter()
	}
	worker := NewLetterWorker(jobRepo, registrations, catalog.Default(), renderer, files, signer, metrics, nil,
		LetterWorkerConfig{SchoolName: "Brightfield Academy", DownloadPath: "/api/v1/letters/download"})

	return &letterFixture{reg: reg, jobs: jobRepo, queue: queue, dir: dir, metrics: metrics, service: svc, worker: worker}
}

func TestLetterServiceRequestAndDownload(t *testing.T) {
	fx := newLetterFixture(t, nil)
	ctx := context.Background()

	job, err := fx.service.Request(ctx, fx.reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LetterQueued, job.Status)
	require.Len(t, fx.queue.jobs, 1)
	assert.Equal(t, JobKindLetter, fx.queue.jobs[0].Kind)
	assert.Equal(t, "job-1", fx.queue.jobs[0].ID)

	require.NoError(t, fx.worker.Handle(ctx, fx.queue.jobs[0]))

	status, err := fx.service.Status(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.LetterFinished, status.Status)
	assert.Equal(t, 1, status.Attempts)
	require.NotNil(t, status.ExpiresAt)
	require.True(t, strings.HasPrefix(status.DownloadURL, "/api/v1/letters/download?token="))
	assert.FileExists(t, filepath.Join(fx.dir, "job-1.pdf"))

	token := strings.TrimPrefix(status.DownloadURL, "/api/v1/letters/download?token=")
	download, err := fx.service.ResolveDownload(ctx, token)
	require.NoError(t, err)
	defer download.File.Close()
	assert.Equal(t, "confirmation-reg-dash.pdf", download.Filename)
	head := make([]byte, 4)
	_, err = io.ReadFull(download.File, head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head))

	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.letterJobs.WithLabelValues("QUEUED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.letterJobs.WithLabelValues("FINISHED")))
}

func TestLetterServiceRequestUnknownRegistration(t *testing.T) {
	fx := newLetterFixture(t, nil)

	_, err := fx.service.Request(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, fx.queue.jobs)
}

func TestLetterServiceRequestQueueFull(t *testing.T) {
	fx := newLetterFixture(t, nil)
	fx.queue.err = jobs.ErrFull

	_, err := fx.service.Request(context.Background(), fx.reg.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, appErrors.FromError(err).Status)

	stored, err := fx.jobs.GetByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.LetterFailed, stored.Status)
}

func TestLetterServiceResolveDownloadRejects(t *testing.T) {
	fx := newLetterFixture(t, nil)
	ctx := context.Background()
	_, err := fx.service.Request(ctx, fx.reg.ID)
	require.NoError(t, err)

	_, err = fx.service.ResolveDownload(ctx, "not-a-token")
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	// A correctly signed token for a job that has not finished.
	token, _, err := storage.NewSignedURLSigner("letter-secret", time.Hour).Generate("job-1", "job-1.pdf")
	require.NoError(t, err)
	_, err = fx.service.ResolveDownload(ctx, token)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	require.NoError(t, fx.worker.Handle(ctx, fx.queue.jobs[0]))
	// Signed for the right job but a different file.
	token, _, err = storage.NewSignedURLSigner("letter-secret", time.Hour).Generate("job-1", "other.pdf")
	require.NoError(t, err)
	_, err = fx.service.ResolveDownload(ctx, token)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestLetterWorkerRenderFailureRequeuesThenFails(t *testing.T) {
	fx := newLetterFixture(t, failingRenderer{})
	ctx := context.Background()
	_, err := fx.service.Request(ctx, fx.reg.ID)
	require.NoError(t, err)

	err = fx.worker.Handle(ctx, fx.queue.jobs[0])
	require.Error(t, err)
	stored, err := fx.jobs.GetByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.LetterQueued, stored.Status)
	assert.Contains(t, stored.Error, "font missing")

	fx.worker.MarkFailed(jobs.Job{ID: "job-1", Attempt: 4}, errors.New("render letter: font missing"))
	stored, err = fx.jobs.GetByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.LetterFailed, stored.Status)
	assert.Empty(t, stored.DownloadURL)
	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.letterJobs.WithLabelValues("FAILED")))
}

func TestLetterServiceCleanupRemovesExpiredLetters(t *testing.T) {
	fx := newLetterFixture(t, nil)
	ctx := context.Background()
	_, err := fx.service.Request(ctx, fx.reg.ID)
	require.NoError(t, err)
	require.NoError(t, fx.worker.Handle(ctx, fx.queue.jobs[0]))

	assert.Equal(t, 0, fx.service.Cleanup(ctx))

	fx.service.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	assert.Equal(t, 1, fx.service.Cleanup(ctx))
	_, statErr := os.Stat(filepath.Join(fx.dir, "job-1.pdf"))
	assert.True(t, os.IsNotExist(statErr))
	_, err = fx.service.Status(ctx, "job-1")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestLetterComposeIncludesGradeTables(t *testing.T) {
	fx := newLetterFixture(t, nil)
	letter := fx.worker.compose(&fx.reg)

	assert.Equal(t, "Registration Complete", letter.Heading)
	assert.Equal(t, "Welcome, Amélie!", letter.Paragraphs[0])
	assert.Equal(t, "Registered on October 15, 2026", letter.Footer)
	titles := make([]string, 0, len(letter.Sections))
	for _, s := range letter.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Student", "Annual fees", "Curriculum", "Daily schedule"}, titles)
}

func TestDollars(t *testing.T) {
	assert.Equal(t, "$500", dollars(500))
	assert.Equal(t, "$45,000", dollars(45000))
	assert.Equal(t, "$1,234,567", dollars(1234567))
	assert.Equal(t, "-$1,000", dollars(-1000))
}
