package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/silay-drrmo/drrmo-api/internal/dto"
	"github.com/silay-drrmo/drrmo-api/internal/models"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
)

type reportStore interface {
	Create(ctx context.Context, record *models.Report) error
	FindByID(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int, error)
}

// ReportService manages citizen-facing flood-risk reports.
type ReportService struct {
	repo      reportStore
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(repo reportStore, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// Create generates a report record, deriving the risk label from the hazard
// code when the caller does not supply one.
func (s *ReportService) Create(ctx context.Context, req dto.CreateReportRequest, actor *models.JWTClaims) (*models.Report, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}

	label := req.FloodRiskLabel
	if label == "" {
		label = models.FloodRiskDescription(req.FloodRiskCode)
	}

	record := &models.Report{
		UserID:         actor.UserID,
		AssessmentID:   req.AssessmentID,
		Barangay:       req.Barangay,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		FloodRiskCode:  req.FloodRiskCode,
		FloodRiskLabel: label,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create report")
	}

	if s.audit != nil {
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &actor.UserID,
			Action:     models.AuditActionReportCreate,
			Resource:   "report",
			ResourceID: &record.ID,
			NewValues:  []byte(fmt.Sprintf(`{"barangay":%q,"flood_risk_code":%q}`, record.Barangay, record.FloodRiskCode)),
			IPAddress:  "system",
			UserAgent:  "report-service",
		}); err != nil {
			s.logger.Warn("failed to record report audit", zap.Error(err))
		}
	}
	return record, nil
}

// Get returns one report record.
func (s *ReportService) Get(ctx context.Context, id string) (*models.Report, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	return record, nil
}

// List returns reports for the active or archived view.
func (s *ReportService) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, *models.Pagination, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}
	return records, paginationFor(filter.Page, filter.PageSize, total), nil
}
