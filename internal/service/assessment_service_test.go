package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/silay-drrmo/drrmo-api/internal/dto"
	"github.com/silay-drrmo/drrmo-api/internal/models"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
)

type assessmentRepoStub struct {
	records map[string]*models.Assessment
	filter  models.AssessmentFilter
}

func newAssessmentRepoStub() *assessmentRepoStub {
	return &assessmentRepoStub{records: make(map[string]*models.Assessment)}
}

func (r *assessmentRepoStub) Create(ctx context.Context, record *models.Assessment) error {
	if record.ID == "" {
		record.ID = fmt.Sprintf("assess-%d", len(r.records)+1)
	}
	r.records[record.ID] = record
	return nil
}

func (r *assessmentRepoStub) FindByID(ctx context.Context, id string) (*models.Assessment, error) {
	if record, ok := r.records[id]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (r *assessmentRepoStub) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, int, error) {
	r.filter = filter
	out := make([]models.Assessment, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, *record)
	}
	return out, len(out), nil
}

func staffClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "user-1", Role: models.RoleStaff, Email: "staff@silay.gov.ph"}
}

func TestAssessmentCreateDerivesRiskDescription(t *testing.T) {
	repo := newAssessmentRepoStub()
	audit := &auditStub{}
	svc := NewAssessmentService(repo, audit, nil, nil)

	record, err := svc.Create(context.Background(), dto.CreateAssessmentRequest{
		Barangay:      "Guinhalaran",
		Latitude:      10.7926,
		Longitude:     122.9744,
		FloodRiskCode: "VHF",
	}, staffClaims())
	require.NoError(t, err)
	require.Equal(t, "Very High Flood Susceptibility", record.FloodRiskDescription)
	require.Equal(t, "user-1", record.UserID)

	require.Len(t, audit.logs, 1)
	require.Equal(t, models.AuditActionAssessmentCreate, audit.logs[0].Action)
}

func TestAssessmentCreateKeepsExplicitDescription(t *testing.T) {
	svc := NewAssessmentService(newAssessmentRepoStub(), nil, nil, nil)

	record, err := svc.Create(context.Background(), dto.CreateAssessmentRequest{
		Barangay:             "Mambulac",
		Latitude:             10.8,
		Longitude:            122.95,
		FloodRiskCode:        "LF",
		FloodRiskDescription: "Low-lying but outside mapped zones",
	}, staffClaims())
	require.NoError(t, err)
	require.Equal(t, "Low-lying but outside mapped zones", record.FloodRiskDescription)
}

func TestAssessmentCreateRejectsInvalidPayload(t *testing.T) {
	svc := NewAssessmentService(newAssessmentRepoStub(), nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateAssessmentRequest{
		Barangay:      "Balaring",
		Latitude:      10.8,
		Longitude:     122.95,
		FloodRiskCode: "EXTREME",
	}, staffClaims())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAssessmentCreateRequiresActor(t *testing.T) {
	svc := NewAssessmentService(newAssessmentRepoStub(), nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateAssessmentRequest{
		Barangay:      "Balaring",
		Latitude:      10.8,
		Longitude:     122.95,
		FloodRiskCode: "HF",
	}, nil)
	require.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAssessmentGetMapsMissingRowToNotFound(t *testing.T) {
	svc := NewAssessmentService(newAssessmentRepoStub(), nil, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestFloodRiskDescriptionMap(t *testing.T) {
	require.Equal(t, "Very High Flood Susceptibility", models.FloodRiskDescription("VHF"))
	require.Equal(t, "High Flood Susceptibility", models.FloodRiskDescription("HF"))
	require.Equal(t, "Moderate Flood Susceptibility", models.FloodRiskDescription("MF"))
	require.Equal(t, "Low Flood Susceptibility", models.FloodRiskDescription("LF"))
	require.Equal(t, "Unknown", models.FloodRiskDescription("XX"))
}
