package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/silay-drrmo/drrmo-api/internal/models"
)

type tallyStub struct {
	tallies map[models.RecordKind]models.KindTally
	err     error
	calls   int
}

func (s *tallyStub) KindTallies(ctx context.Context) (map[models.RecordKind]models.KindTally, error) {
	s.calls++
	return s.tallies, s.err
}

type impactStub struct {
	stats *models.DashboardStats
	err   error
}

func (s *impactStub) ImpactTotals(ctx context.Context) (*models.DashboardStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.stats
	return &copied, nil
}

func TestDashboardStatsWithoutCache(t *testing.T) {
	tallies := &tallyStub{tallies: map[models.RecordKind]models.KindTally{
		models.KindAssessments: {Active: 12, Archived: 4},
		models.KindReports:     {Active: 7, Archived: 1},
	}}
	impact := &impactStub{stats: &models.DashboardStats{
		CasualtiesDead:  2,
		AffectedPersons: 560,
		DamageTotalPHP:  1250000,
	}}

	svc := NewDashboardService(tallies, impact, nil, 0, nil)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12), stats.Records[models.KindAssessments].Active)
	require.Equal(t, int64(1), stats.Records[models.KindReports].Archived)
	require.Equal(t, int64(560), stats.AffectedPersons)

	// No cache client means every call goes back to the stores.
	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, tallies.calls)
}

func TestDashboardStatsPropagatesStoreError(t *testing.T) {
	impact := &impactStub{err: errors.New("aggregate query failed")}
	svc := NewDashboardService(&tallyStub{}, impact, nil, 0, nil)

	_, err := svc.Stats(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to aggregate flood impact")
}

func TestDashboardInvalidateWithoutCacheIsNoop(t *testing.T) {
	svc := NewDashboardService(&tallyStub{}, &impactStub{stats: &models.DashboardStats{}}, nil, 0, nil)
	svc.Invalidate(context.Background())
}
