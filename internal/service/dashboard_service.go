package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
)

const dashboardCacheKey = "drrmo:dashboard:stats"

type tallyStore interface {
	KindTallies(ctx context.Context) (map[models.RecordKind]models.KindTally, error)
}

type impactStore interface {
	ImpactTotals(ctx context.Context) (*models.DashboardStats, error)
}

// DashboardService aggregates record tallies and flood impact figures for
// the admin dashboard, with a short-lived Redis cache in front of the
// aggregate queries.
type DashboardService struct {
	tallies  tallyStore
	impact   impactStore
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService constructs the service. The cache client may be nil,
// in which case every call hits the database.
func NewDashboardService(tallies tallyStore, impact impactStore, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{tallies: tallies, impact: impact, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Stats returns the dashboard aggregate, serving from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.impact.ImpactTotals(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate flood impact")
	}

	records, err := s.tallies.KindTallies(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to tally records")
	}
	stats.Records = records

	s.toCache(ctx, stats)
	return stats, nil
}

// Invalidate drops the cached aggregate. Archive and restore runs call this
// so tallies reflect the new active/archived split immediately.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

func (s *DashboardService) fromCache(ctx context.Context) *models.DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats models.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn("dashboard cache entry malformed", zap.Error(err))
		return nil
	}
	return &stats
}

func (s *DashboardService) toCache(ctx context.Context, stats *models.DashboardStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		s.logger.Warn("failed to encode dashboard cache entry", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}
