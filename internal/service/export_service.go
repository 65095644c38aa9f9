package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	"github.com/silay-drrmo/drrmo-api/pkg/config"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
	"github.com/silay-drrmo/drrmo-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type titledRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries the rendered document plus response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders record datasets as downloadable CSV or PDF files.
type ExportService struct {
	cfg         config.ExportsConfig
	assessments assessmentStore
	reports     reportStore
	activities  floodActivityStore
	csv         datasetRenderer
	pdf         titledRenderer
	logger      *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(
	cfg config.ExportsConfig,
	assessments assessmentStore,
	reports reportStore,
	activities floodActivityStore,
	csv datasetRenderer,
	pdf titledRenderer,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		cfg:         cfg,
		assessments: assessments,
		reports:     reports,
		activities:  activities,
		csv:         csv,
		pdf:         pdf,
		logger:      logger,
	}
}

// ExportAssessments renders the assessment register.
func (s *ExportService) ExportAssessments(ctx context.Context, format ExportFormat, archived bool) (*ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}
	records, _, err := s.assessments.List(ctx, models.AssessmentFilter{Archived: archived, Page: 1, PageSize: s.maxRows()})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessments for export")
	}

	data := export.Dataset{
		Headers: []string{"Barangay", "Latitude", "Longitude", "Risk Code", "Risk Description", "Logged At"},
	}
	for _, r := range records {
		data.Rows = append(data.Rows, map[string]string{
			"Barangay":         r.Barangay,
			"Latitude":         formatCoord(r.Latitude),
			"Longitude":        formatCoord(r.Longitude),
			"Risk Code":        r.FloodRiskCode,
			"Risk Description": r.FloodRiskDescription,
			"Logged At":        r.Timestamp.Format(time.RFC3339),
		})
	}
	return s.render(data, format, "assessment_records", "Assessment Records")
}

// ExportReports renders the report register.
func (s *ExportService) ExportReports(ctx context.Context, format ExportFormat, archived bool) (*ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}
	records, _, err := s.reports.List(ctx, models.ReportFilter{Archived: archived, Page: 1, PageSize: s.maxRows()})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reports for export")
	}

	data := export.Dataset{
		Headers: []string{"Barangay", "Latitude", "Longitude", "Risk Code", "Risk Label", "Logged At"},
	}
	for _, r := range records {
		data.Rows = append(data.Rows, map[string]string{
			"Barangay":   r.Barangay,
			"Latitude":   formatCoord(r.Latitude),
			"Longitude":  formatCoord(r.Longitude),
			"Risk Code":  r.FloodRiskCode,
			"Risk Label": r.FloodRiskLabel,
			"Logged At":  r.Timestamp.Format(time.RFC3339),
		})
	}
	return s.render(data, format, "report_records", "Report Records")
}

// ExportFloodActivities renders the flood event activity log.
func (s *ExportService) ExportFloodActivities(ctx context.Context, format ExportFormat, archived bool) (*ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}
	records, _, err := s.activities.List(ctx, models.FloodActivityFilter{Archived: archived, Page: 1, PageSize: s.maxRows()})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load flood activities for export")
	}

	data := export.Dataset{
		Headers: []string{"Action", "Event Type", "Event Date", "Barangays", "Casualties", "Affected Persons", "Damage (PHP)", "Logged At"},
	}
	for i := range records {
		r := &records[i]
		data.Rows = append(data.Rows, map[string]string{
			"Action":           r.Action,
			"Event Type":       r.EventType,
			"Event Date":       r.EventDate.Format("2006-01-02"),
			"Barangays":        r.AffectedBarangays,
			"Casualties":       strconv.Itoa(r.TotalCasualties()),
			"Affected Persons": strconv.Itoa(r.AffectedPersons),
			"Damage (PHP)":     fmt.Sprintf("%.2f", r.DamageTotalPHP),
			"Logged At":        r.Timestamp.Format(time.RFC3339),
		})
	}
	return s.render(data, format, "flood_activity_records", "Flood Event Activity")
}

func (s *ExportService) render(data export.Dataset, format ExportFormat, name, title string) (*ExportResult, error) {
	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("%s_%s.csv", name, stamp),
		}, nil
	case FormatPDF:
		content, err := s.pdf.Render(data, fmt.Sprintf("%s - %s", s.cfg.CityName, title))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("%s_%s.pdf", name, stamp),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func (s *ExportService) maxRows() int {
	if s.cfg.MaxRows > 0 {
		return s.cfg.MaxRows
	}
	return 10000
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
