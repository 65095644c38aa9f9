package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/silay-drrmo/drrmo-api/internal/models"
)

// archivalStoreStub keeps records in memory and applies the same predicates
// as the SQL layer, so runs can be verified end to end without a database.
type archivalStoreStub struct {
	records map[models.RecordKind][]stubRecord

	failArchiveKind models.RecordKind
	archivedKinds   []models.RecordKind
	restoredKinds   []models.RecordKind
}

type stubRecord struct {
	timestamp  time.Time
	isArchived bool
	archivedAt *time.Time
}

func newArchivalStoreStub() *archivalStoreStub {
	return &archivalStoreStub{records: make(map[models.RecordKind][]stubRecord)}
}

func (s *archivalStoreStub) add(kind models.RecordKind, age time.Duration, archived bool) {
	s.records[kind] = append(s.records[kind], stubRecord{
		timestamp:  time.Now().UTC().Add(-age),
		isArchived: archived,
	})
}

func (s *archivalStoreStub) CountActiveBefore(ctx context.Context, kind models.RecordKind, cutoff time.Time) (int64, error) {
	var count int64
	for _, r := range s.records[kind] {
		if !r.isArchived && r.timestamp.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (s *archivalStoreStub) CountArchived(ctx context.Context, kind models.RecordKind, from, to *time.Time) (int64, error) {
	var count int64
	for _, r := range s.records[kind] {
		if s.matchesWindow(r, from, to) {
			count++
		}
	}
	return count, nil
}

func (s *archivalStoreStub) ArchiveBefore(ctx context.Context, kind models.RecordKind, cutoff, archivedAt time.Time) (int64, error) {
	if kind == s.failArchiveKind {
		return 0, fmt.Errorf("connection reset")
	}
	s.archivedKinds = append(s.archivedKinds, kind)
	var count int64
	rows := s.records[kind]
	for i := range rows {
		if !rows[i].isArchived && rows[i].timestamp.Before(cutoff) {
			rows[i].isArchived = true
			at := archivedAt
			rows[i].archivedAt = &at
			count++
		}
	}
	return count, nil
}

func (s *archivalStoreStub) RestoreArchived(ctx context.Context, kind models.RecordKind, from, to *time.Time) (int64, error) {
	s.restoredKinds = append(s.restoredKinds, kind)
	var count int64
	rows := s.records[kind]
	for i := range rows {
		if s.matchesWindow(rows[i], from, to) {
			rows[i].isArchived = false
			rows[i].archivedAt = nil
			count++
		}
	}
	return count, nil
}

func (s *archivalStoreStub) matchesWindow(r stubRecord, from, to *time.Time) bool {
	if !r.isArchived {
		return false
	}
	if from != nil && r.timestamp.Before(*from) {
		return false
	}
	if to != nil && !r.timestamp.Before(*to) {
		return false
	}
	return true
}

func (s *archivalStoreStub) snapshot() map[models.RecordKind][]stubRecord {
	out := make(map[models.RecordKind][]stubRecord, len(s.records))
	for kind, rows := range s.records {
		copied := make([]stubRecord, len(rows))
		copy(copied, rows)
		out[kind] = copied
	}
	return out
}

type auditStub struct {
	logs []*models.AuditLog
}

func (a *auditStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

func approve(models.ArchivalSummary) bool { return true }
func decline(models.ArchivalSummary) bool { return false }

func TestArchiveRequiresExactlyOneMode(t *testing.T) {
	svc := NewArchivalService(newArchivalStoreStub(), nil, nil)

	_, err := svc.Archive(context.Background(), ArchiveOptions{Years: 2}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "specify either dry-run or execute")

	_, err = svc.Archive(context.Background(), ArchiveOptions{DryRun: true, Execute: true, Years: 2}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot use both")
}

func TestArchiveRejectsYearsBelowOne(t *testing.T) {
	svc := NewArchivalService(newArchivalStoreStub(), nil, nil)

	_, err := svc.Archive(context.Background(), ArchiveOptions{DryRun: true, Years: 0}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "years must be at least 1")
}

func TestArchiveDryRunNeverMutates(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindAssessments, 3*365*24*time.Hour, false)
	store.add(models.KindReports, 30*24*time.Hour, false)
	before := store.snapshot()

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Archive(context.Background(), ArchiveOptions{DryRun: true, Years: 2}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, RunDryRun, result.Status)
	require.Nil(t, result.Applied)
	require.Equal(t, int64(1), result.Previewed.Counts[models.KindAssessments])
	require.Equal(t, int64(1), result.Previewed.Total)
	require.Equal(t, before, store.snapshot())
}

func TestArchiveNothingToDo(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindAssessments, 30*24*time.Hour, false)

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Archive(context.Background(), ArchiveOptions{Execute: true, Years: 2}, approve, nil)
	require.NoError(t, err)
	require.Equal(t, RunNothingToDo, result.Status)
	require.Empty(t, store.archivedKinds)
}

func TestArchiveDeclinedConfirmationMutatesNothing(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindAssessments, 3*365*24*time.Hour, false)
	before := store.snapshot()

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Archive(context.Background(), ArchiveOptions{Execute: true, Years: 2}, decline, nil)
	require.NoError(t, err)
	require.Equal(t, RunCancelled, result.Status)
	require.Nil(t, result.Applied)
	require.Equal(t, before, store.snapshot())
}

func TestArchiveNilConfirmCancels(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindReports, 3*365*24*time.Hour, false)

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Archive(context.Background(), ArchiveOptions{Execute: true, Years: 2}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, RunCancelled, result.Status)
}

func TestArchiveExecuteFlipsOnlyOldActiveRows(t *testing.T) {
	store := newArchivalStoreStub()
	// Three assessments: 3 years, 1 year, 6 months old.
	store.add(models.KindAssessments, 3*365*24*time.Hour, false)
	store.add(models.KindAssessments, 365*24*time.Hour, false)
	store.add(models.KindAssessments, 183*24*time.Hour, false)
	audit := &auditStub{}

	svc := NewArchivalService(store, audit, nil)
	result, err := svc.Archive(context.Background(), ArchiveOptions{Execute: true, Years: 2}, approve, nil)
	require.NoError(t, err)
	require.Equal(t, RunCompleted, result.Status)
	require.NotNil(t, result.Applied)
	require.Equal(t, int64(1), result.Applied.Counts[models.KindAssessments])
	require.Equal(t, int64(1), result.Applied.Total)

	archived := 0
	for _, r := range store.records[models.KindAssessments] {
		if r.isArchived {
			require.NotNil(t, r.archivedAt)
			archived++
		}
	}
	require.Equal(t, 1, archived)

	require.Len(t, audit.logs, 1)
	require.Equal(t, models.AuditActionArchiveRun, audit.logs[0].Action)
}

func TestArchiveSkipsUserLogsByDefault(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindUserLogs, 3*365*24*time.Hour, false)
	store.add(models.KindAssessments, 3*365*24*time.Hour, false)

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Archive(context.Background(), ArchiveOptions{Execute: true, Years: 2}, approve, nil)
	require.NoError(t, err)
	require.Equal(t, RunCompleted, result.Status)
	require.Equal(t, int64(0), result.Previewed.Counts[models.KindUserLogs])
	require.NotContains(t, store.archivedKinds, models.KindUserLogs)
	require.False(t, store.records[models.KindUserLogs][0].isArchived)
}

func TestArchiveIncludesUserLogsOnRequest(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindUserLogs, 3*365*24*time.Hour, false)

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Archive(context.Background(), ArchiveOptions{Execute: true, Years: 2, IncludeLogs: true}, approve, nil)
	require.NoError(t, err)
	require.Equal(t, RunCompleted, result.Status)
	require.Equal(t, int64(1), result.Applied.Counts[models.KindUserLogs])
	require.True(t, store.records[models.KindUserLogs][0].isArchived)
}

func TestArchiveMidRunFailureKeepsEarlierKinds(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindAssessments, 3*365*24*time.Hour, false)
	store.add(models.KindReports, 3*365*24*time.Hour, false)
	store.failArchiveKind = models.KindReports

	svc := NewArchivalService(store, nil, nil)
	_, err := svc.Archive(context.Background(), ArchiveOptions{Execute: true, Years: 2}, approve, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to archive reports")
	// The assessments flip committed before the failure stays applied.
	require.True(t, store.records[models.KindAssessments][0].isArchived)
}

func TestArchiveCutoffUses365DayYears(t *testing.T) {
	store := newArchivalStoreStub()
	svc := NewArchivalService(store, nil, nil)
	fixed := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	result, err := svc.Archive(context.Background(), ArchiveOptions{DryRun: true, Years: 2}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, result.Cutoff)
	require.Equal(t, fixed.AddDate(0, 0, -730), *result.Cutoff)
}

func TestRestoreRequiresSelector(t *testing.T) {
	svc := NewArchivalService(newArchivalStoreStub(), nil, nil)

	_, err := svc.Restore(context.Background(), RestoreOptions{DryRun: true}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "specify --all, --type, or a date range")
}

func TestRestoreRejectsBadDates(t *testing.T) {
	svc := NewArchivalService(newArchivalStoreStub(), nil, nil)

	_, err := svc.Restore(context.Background(), RestoreOptions{DryRun: true, DateFrom: "01-01-2023"}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid date-from format")

	_, err = svc.Restore(context.Background(), RestoreOptions{DryRun: true, All: true, DateTo: "yesterday"}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid date-to format")
}

func TestRestoreRejectsUnknownType(t *testing.T) {
	svc := NewArchivalService(newArchivalStoreStub(), nil, nil)

	_, err := svc.Restore(context.Background(), RestoreOptions{DryRun: true, Type: "permits"}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown record type "permits"`)
}

func TestRestoreAllFlipsEveryArchivedKind(t *testing.T) {
	store := newArchivalStoreStub()
	for _, kind := range models.RecordKinds {
		store.add(kind, 3*365*24*time.Hour, true)
	}

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Restore(context.Background(), RestoreOptions{Execute: true, All: true}, approve, nil)
	require.NoError(t, err)
	require.Equal(t, RunCompleted, result.Status)
	require.Equal(t, int64(len(models.RecordKinds)), result.Applied.Total)
	for _, kind := range models.RecordKinds {
		require.False(t, store.records[kind][0].isArchived)
		require.Nil(t, store.records[kind][0].archivedAt)
	}
}

func TestRestoreTypeNarrowsToOneKind(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindAssessments, 365*24*time.Hour, true)
	store.add(models.KindReports, 365*24*time.Hour, true)

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Restore(context.Background(), RestoreOptions{Execute: true, Type: "reports"}, approve, nil)
	require.NoError(t, err)
	require.Equal(t, RunCompleted, result.Status)
	require.Equal(t, []models.RecordKind{models.KindReports}, store.restoredKinds)
	require.Equal(t, int64(1), result.Applied.Total)
	require.True(t, store.records[models.KindAssessments][0].isArchived)
	require.False(t, store.records[models.KindReports][0].isArchived)
}

func TestRestoreDateToIsInclusive(t *testing.T) {
	store := newArchivalStoreStub()
	day := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	store.records[models.KindAssessments] = []stubRecord{
		{timestamp: day, isArchived: true},
		{timestamp: day.AddDate(0, 0, 1), isArchived: true},
	}

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Restore(context.Background(), RestoreOptions{
		Execute:  true,
		Type:     "assessments",
		DateFrom: "2024-06-01",
		DateTo:   "2024-06-15",
	}, approve, nil)
	require.NoError(t, err)
	require.Equal(t, RunCompleted, result.Status)
	// A record at 14:30 on the date-to day is still inside the window.
	require.Equal(t, int64(1), result.Applied.Total)
	require.False(t, store.records[models.KindAssessments][0].isArchived)
	require.True(t, store.records[models.KindAssessments][1].isArchived)
}

func TestRestoreDryRunNeverMutates(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindCertificates, 365*24*time.Hour, true)
	before := store.snapshot()

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Restore(context.Background(), RestoreOptions{DryRun: true, All: true}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, RunDryRun, result.Status)
	require.Equal(t, int64(1), result.Previewed.Total)
	require.Equal(t, before, store.snapshot())
}

func TestRestoreNothingToDo(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindAssessments, 365*24*time.Hour, false)

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Restore(context.Background(), RestoreOptions{Execute: true, All: true}, approve, nil)
	require.NoError(t, err)
	require.Equal(t, RunNothingToDo, result.Status)
	require.Empty(t, store.restoredKinds)
}

func TestRestoreDeclinedConfirmation(t *testing.T) {
	store := newArchivalStoreStub()
	store.add(models.KindAssessments, 365*24*time.Hour, true)

	svc := NewArchivalService(store, nil, nil)
	result, err := svc.Restore(context.Background(), RestoreOptions{Execute: true, All: true}, decline, nil)
	require.NoError(t, err)
	require.Equal(t, RunCancelled, result.Status)
	require.True(t, store.records[models.KindAssessments][0].isArchived)
}

func TestArchivalSummaryKeepsTotalInSync(t *testing.T) {
	summary := models.NewArchivalSummary()
	require.Equal(t, int64(0), summary.Total)
	require.Len(t, summary.Counts, len(models.RecordKinds))

	summary.Set(models.KindAssessments, 5)
	summary.Set(models.KindReports, 3)
	require.Equal(t, int64(8), summary.Total)

	summary.Set(models.KindAssessments, 2)
	require.Equal(t, int64(5), summary.Total)
}
