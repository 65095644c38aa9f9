package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	"github.com/silay-drrmo/drrmo-api/pkg/config"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
	"github.com/silay-drrmo/drrmo-api/pkg/export"
)

type reportRepoStub struct {
	records []models.Report
	filter  models.ReportFilter
}

func (r *reportRepoStub) Create(ctx context.Context, record *models.Report) error { return nil }

func (r *reportRepoStub) FindByID(ctx context.Context, id string) (*models.Report, error) {
	return nil, nil
}

func (r *reportRepoStub) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int, error) {
	r.filter = filter
	return r.records, len(r.records), nil
}

type floodActivityRepoStub struct {
	records []models.FloodActivity
}

func (r *floodActivityRepoStub) Create(ctx context.Context, record *models.FloodActivity) error {
	return nil
}

func (r *floodActivityRepoStub) List(ctx context.Context, filter models.FloodActivityFilter) ([]models.FloodActivity, int, error) {
	return r.records, len(r.records), nil
}

func exportTestService(assessments assessmentStore, reports reportStore, activities floodActivityStore) *ExportService {
	cfg := config.ExportsConfig{Enabled: true, MaxRows: 10000, CityName: "City of Silay"}
	return NewExportService(cfg, assessments, reports, activities, export.NewCSVExporter(), export.NewPDFExporter(), nil)
}

func TestExportAssessmentsCSV(t *testing.T) {
	repo := newAssessmentRepoStub()
	require.NoError(t, repo.Create(context.Background(), &models.Assessment{
		Barangay:             "Guinhalaran",
		Latitude:             10.7926,
		Longitude:            122.9744,
		FloodRiskCode:        "VHF",
		FloodRiskDescription: "Very High Flood Susceptibility",
		Timestamp:            time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}))
	svc := exportTestService(repo, &reportRepoStub{}, &floodActivityRepoStub{})

	result, err := svc.ExportAssessments(context.Background(), FormatCSV, false)
	require.NoError(t, err)
	require.Equal(t, "text/csv", result.ContentType)
	require.True(t, strings.HasPrefix(result.Filename, "assessment_records_"))
	require.True(t, strings.HasSuffix(result.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Barangay,Latitude,Longitude,Risk Code,Risk Description,Logged At", lines[0])
	require.Contains(t, lines[1], "Guinhalaran")
	require.Contains(t, lines[1], "10.792600")
	require.Contains(t, lines[1], "VHF")
	require.Contains(t, lines[1], "2025-03-14T09:30:00Z")
}

func TestExportReportsRequestsArchivedView(t *testing.T) {
	reports := &reportRepoStub{}
	svc := exportTestService(newAssessmentRepoStub(), reports, &floodActivityRepoStub{})

	_, err := svc.ExportReports(context.Background(), FormatCSV, true)
	require.NoError(t, err)
	require.True(t, reports.filter.Archived)
	require.Equal(t, 10000, reports.filter.PageSize)
}

func TestExportFloodActivitiesCSVSumsCasualties(t *testing.T) {
	activities := &floodActivityRepoStub{records: []models.FloodActivity{{
		Action:            "CREATE",
		EventType:         "Flash Flood",
		EventDate:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		AffectedBarangays: "Balaring; Mambulac",
		CasualtiesDead:    1,
		CasualtiesInjured: 3,
		CasualtiesMissing: 2,
		AffectedPersons:   140,
		DamageTotalPHP:    250000.50,
		Timestamp:         time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
	}}}
	svc := exportTestService(newAssessmentRepoStub(), &reportRepoStub{}, activities)

	result, err := svc.ExportFloodActivities(context.Background(), FormatCSV, false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], ",6,")
	require.Contains(t, lines[1], "250000.50")
}

func TestExportPDFFormat(t *testing.T) {
	svc := exportTestService(newAssessmentRepoStub(), &reportRepoStub{}, &floodActivityRepoStub{})

	result, err := svc.ExportAssessments(context.Background(), FormatPDF, false)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ContentType)
	require.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := exportTestService(newAssessmentRepoStub(), &reportRepoStub{}, &floodActivityRepoStub{})

	_, err := svc.ExportAssessments(context.Background(), ExportFormat("xlsx"), false)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportDisabledByConfig(t *testing.T) {
	svc := NewExportService(config.ExportsConfig{Enabled: false}, newAssessmentRepoStub(), &reportRepoStub{}, &floodActivityRepoStub{}, export.NewCSVExporter(), export.NewPDFExporter(), nil)

	_, err := svc.ExportAssessments(context.Background(), FormatCSV, false)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
