package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/geospatial-academy/training-hub-api/internal/models"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
	"github.com/geospatial-academy/training-hub-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes plus response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

type exportRegistrationRepository interface {
	List(ctx context.Context) ([]models.Registration, error)
}

type exportCourseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// ExportService renders the registration list as downloadable documents.
type ExportService struct {
	registrations exportRegistrationRepository
	courses       exportCourseRepository
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	logger        *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(registrations exportRegistrationRepository, courses exportCourseRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		registrations: registrations,
		courses:       courses,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		logger:        logger,
	}
}

var registrationExportHeaders = []string{"ID", "Name", "Email", "Country", "Course", "Level", "Status", "Registered"}

// Registrations renders all registrations in the requested format. Course
// titles are resolved best-effort, a dangling reference falls back to the
// raw course id.
func (s *ExportService) Registrations(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	regs, err := s.registrations.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}

	titles := make(map[string]string)
	rows := make([]map[string]string, 0, len(regs))
	for _, reg := range regs {
		title, ok := titles[reg.CourseID]
		if !ok {
			title = reg.CourseID
			if course, err := s.courses.FindByID(ctx, reg.CourseID); err == nil {
				title = course.Title
			} else if !errors.Is(err, sql.ErrNoRows) {
				s.logger.Warn("failed to resolve course for export",
					zap.String("course_id", reg.CourseID), zap.Error(err))
			}
			titles[reg.CourseID] = title
		}
		rows = append(rows, map[string]string{
			"ID":         strconv.FormatInt(reg.ID, 10),
			"Name":       reg.FirstName + " " + reg.LastName,
			"Email":      reg.Email,
			"Country":    reg.Country,
			"Course":     title,
			"Level":      reg.ExperienceLevel,
			"Status":     string(reg.Status),
			"Registered": reg.RegisteredAt.Format("2006-01-02 15:04"),
		})
	}

	data := export.Dataset{Headers: registrationExportHeaders, Rows: rows}

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "registrations.csv"}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(data, "Course Registrations")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "registrations.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
