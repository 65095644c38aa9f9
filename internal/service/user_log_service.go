package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
)

type userLogStore interface {
	List(ctx context.Context, filter models.UserLogFilter) ([]models.UserLog, int, error)
}

// UserLogService exposes the user activity log to administrators.
type UserLogService struct {
	repo   userLogStore
	logger *zap.Logger
}

// NewUserLogService constructs the service.
func NewUserLogService(repo userLogStore, logger *zap.Logger) *UserLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserLogService{repo: repo, logger: logger}
}

// List returns user activity entries for the active or archived view.
func (s *UserLogService) List(ctx context.Context, filter models.UserLogFilter) ([]models.UserLog, *models.Pagination, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list user logs")
	}
	return entries, paginationFor(filter.Page, filter.PageSize, total), nil
}
