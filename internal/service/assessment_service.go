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

type assessmentStore interface {
	Create(ctx context.Context, record *models.Assessment) error
	FindByID(ctx context.Context, id string) (*models.Assessment, error)
	List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, int, error)
}

// AssessmentService manages flood-risk assessment records.
type AssessmentService struct {
	repo      assessmentStore
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService constructs the service.
func NewAssessmentService(repo assessmentStore, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// Create logs a new assessment for the acting staff member.
func (s *AssessmentService) Create(ctx context.Context, req dto.CreateAssessmentRequest, actor *models.JWTClaims) (*models.Assessment, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}

	description := req.FloodRiskDescription
	if description == "" {
		description = models.FloodRiskDescription(req.FloodRiskCode)
	}

	record := &models.Assessment{
		UserID:               actor.UserID,
		Barangay:             req.Barangay,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		FloodRiskCode:        req.FloodRiskCode,
		FloodRiskDescription: description,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assessment")
	}

	s.emitAudit(ctx, actor, models.AuditActionAssessmentCreate, record.ID, record.Barangay)
	return record, nil
}

// Get returns one assessment record.
func (s *AssessmentService) Get(ctx context.Context, id string) (*models.Assessment, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessment")
	}
	return record, nil
}

// List returns assessments for the active or archived view.
func (s *AssessmentService) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, *models.Pagination, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assessments")
	}
	return records, paginationFor(filter.Page, filter.PageSize, total), nil
}

func (s *AssessmentService) emitAudit(ctx context.Context, actor *models.JWTClaims, action, resourceID, detail string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     action,
		Resource:   "assessment",
		ResourceID: &resourceID,
		NewValues:  []byte(fmt.Sprintf(`{"barangay":%q}`, detail)),
		IPAddress:  "system",
		UserAgent:  "assessment-service",
	}); err != nil {
		s.logger.Warn("failed to record assessment audit", zap.Error(err))
	}
}

func paginationFor(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	if size > 10000 {
		size = 10000
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}
