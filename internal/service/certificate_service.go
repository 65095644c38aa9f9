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
	"github.com/silay-drrmo/drrmo-api/pkg/export"
)

type certificateStore interface {
	Create(ctx context.Context, record *models.Certificate) error
	FindByID(ctx context.Context, id string) (*models.Certificate, error)
	List(ctx context.Context, filter models.CertificateFilter) ([]models.Certificate, int, error)
}

type certificateRenderer interface {
	Render(data export.CertificateData) ([]byte, error)
}

// CertificateService manages zoning certificates, including the printable
// PDF form handed to applicants.
type CertificateService struct {
	repo      certificateStore
	audit     auditLogger
	renderer  certificateRenderer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCertificateService constructs the service.
func NewCertificateService(repo certificateStore, audit auditLogger, renderer certificateRenderer, validate *validator.Validate, logger *zap.Logger) *CertificateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateService{repo: repo, audit: audit, renderer: renderer, validator: validate, logger: logger}
}

// Create issues a new zoning certificate.
func (s *CertificateService) Create(ctx context.Context, req dto.CreateCertificateRequest, actor *models.JWTClaims) (*models.Certificate, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid certificate payload")
	}

	record := &models.Certificate{
		UserID:              actor.UserID,
		AssessmentID:        req.AssessmentID,
		EstablishmentName:   req.EstablishmentName,
		OwnerName:           req.OwnerName,
		Location:            req.Location,
		Barangay:            req.Barangay,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		FloodSusceptibility: req.FloodSusceptibility,
		ZoneStatus:          req.ZoneStatus,
		IssueDate:           req.IssueDate,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create certificate")
	}

	if s.audit != nil {
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &actor.UserID,
			Action:     models.AuditActionCertificateCreate,
			Resource:   "certificate",
			ResourceID: &record.ID,
			NewValues:  []byte(fmt.Sprintf(`{"establishment_name":%q}`, record.EstablishmentName)),
			IPAddress:  "system",
			UserAgent:  "certificate-service",
		}); err != nil {
			s.logger.Warn("failed to record certificate audit", zap.Error(err))
		}
	}
	return record, nil
}

// Get returns one certificate record.
func (s *CertificateService) Get(ctx context.Context, id string) (*models.Certificate, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load certificate")
	}
	return record, nil
}

// List returns certificates for the active or archived view.
func (s *CertificateService) List(ctx context.Context, filter models.CertificateFilter) ([]models.Certificate, *models.Pagination, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list certificates")
	}
	return records, paginationFor(filter.Page, filter.PageSize, total), nil
}

// RenderPDF produces the printable certificate document.
func (s *CertificateService) RenderPDF(ctx context.Context, id string) ([]byte, *models.Certificate, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.renderer == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrInternal, "certificate rendering is not configured")
	}

	doc, err := s.renderer.Render(export.CertificateData{
		EstablishmentName:   record.EstablishmentName,
		OwnerName:           record.OwnerName,
		Location:            record.Location,
		Barangay:            record.Barangay,
		FloodSusceptibility: record.FloodSusceptibility,
		ZoneStatus:          record.ZoneStatus,
		IssueDate:           record.IssueDate,
		CertificateID:       record.ID,
	})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render certificate")
	}
	return doc, record, nil
}
