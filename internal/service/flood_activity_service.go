package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/silay-drrmo/drrmo-api/internal/dto"
	"github.com/silay-drrmo/drrmo-api/internal/models"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
)

type floodActivityStore interface {
	Create(ctx context.Context, record *models.FloodActivity) error
	List(ctx context.Context, filter models.FloodActivityFilter) ([]models.FloodActivity, int, error)
}

// FloodActivityService records changes to the flood event register.
type FloodActivityService struct {
	repo      floodActivityStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFloodActivityService constructs the service.
func NewFloodActivityService(repo floodActivityStore, validate *validator.Validate, logger *zap.Logger) *FloodActivityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FloodActivityService{repo: repo, validator: validate, logger: logger}
}

// Create appends one activity entry for a flood record mutation.
func (s *FloodActivityService) Create(ctx context.Context, req dto.CreateFloodActivityRequest, actor *models.JWTClaims) (*models.FloodActivity, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid flood activity payload")
	}

	record := &models.FloodActivity{
		UserID:            actor.UserID,
		Action:            req.Action,
		FloodRecordID:     req.FloodRecordID,
		EventType:         req.EventType,
		EventDate:         req.EventDate,
		AffectedBarangays: req.AffectedBarangays,
		CasualtiesDead:    req.CasualtiesDead,
		CasualtiesInjured: req.CasualtiesInjured,
		CasualtiesMissing: req.CasualtiesMissing,
		AffectedPersons:   req.AffectedPersons,
		AffectedFamilies:  req.AffectedFamilies,
		DamageTotalPHP:    req.DamageTotalPHP,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create flood activity")
	}
	return record, nil
}

// List returns flood activity entries for the active or archived view.
func (s *FloodActivityService) List(ctx context.Context, filter models.FloodActivityFilter) ([]models.FloodActivity, *models.Pagination, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list flood activities")
	}
	return records, paginationFor(filter.Page, filter.PageSize, total), nil
}
