package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/k12-registration-api/internal/models"
	appErrors "github.com/noah-isme/k12-registration-api/pkg/errors"
	"github.com/noah-isme/k12-registration-api/pkg/export"
)

// Roster formats.
const (
	RosterFormatCSV = "csv"
	RosterFormatPDF = "pdf"
)

var rosterHeaders = []string{
	"ID", "Last Name", "First Name", "Grade", "Date of Birth", "Email", "Phone",
	"Guardian", "Guardian Phone", "Address", "Previous School", "Registered",
}

type registrationExporter interface {
	Export(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// RosterFile is a rendered roster ready to send.
type RosterFile struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// RosterService renders the admin registration roster. Medical notes are
// never exported.
type RosterService struct {
	registrations registrationExporter
	csv           csvRenderer
	pdf           pdfRenderer
	logger        *zap.Logger
	now           func() time.Time
}

// NewRosterService constructs a roster service. Nil renderers use the pkg/export defaults.
func NewRosterService(registrations registrationExporter, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &RosterService{registrations: registrations, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Export renders every registration matching filter in the requested format.
func (s *RosterService) Export(ctx context.Context, filter models.RegistrationFilter, format string) (*RosterFile, error) {
	if format == "" {
		format = RosterFormatCSV
	}
	if format != RosterFormatCSV && format != RosterFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	regs, err := s.registrations.Export(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := buildRosterDataset(regs)
	stamp := s.now().UTC().Format("20060102-150405")

	out := &RosterFile{Rows: len(regs)}
	switch format {
	case RosterFormatPDF:
		title := "Registration roster"
		if filter.Grade != "" {
			title += " - " + string(filter.Grade)
		}
		out.Body, err = s.pdf.Render(data, title)
		out.ContentType = "application/pdf"
	default:
		out.Body, err = s.csv.Render(data)
		out.ContentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
	}
	out.Filename = fmt.Sprintf("registrations-%s.%s", stamp, format)
	s.logger.Info("roster exported", zap.String("format", format), zap.Int("rows", out.Rows))
	return out, nil
}

func buildRosterDataset(regs []models.Registration) export.Dataset {
	rows := make([]map[string]string, 0, len(regs))
	for _, r := range regs {
		rows = append(rows, map[string]string{
			"ID":              r.ID,
			"Last Name":       r.LastName,
			"First Name":      r.FirstName,
			"Grade":           string(r.Grade),
			"Date of Birth":   r.DateOfBirth,
			"Email":           r.Email,
			"Phone":           r.Phone,
			"Guardian":        r.GuardianName,
			"Guardian Phone":  r.GuardianPhone,
			"Address":         r.Address,
			"Previous School": r.PreviousSchool,
			"Registered":      r.RegisteredAt.UTC().Format(time.RFC3339),
		})
	}
	return export.Dataset{Headers: rosterHeaders, Rows: rows}
}
