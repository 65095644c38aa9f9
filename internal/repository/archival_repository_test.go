package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/silay-drrmo/drrmo-api/internal/models"
)

func newArchivalRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestArchivalRepositoryCountActiveBefore(t *testing.T) {
	db, mock, cleanup := newArchivalRepoMock(t)
	defer cleanup()

	repo := NewArchivalRepository(db)
	cutoff := time.Date(2024, 8, 24, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM assessment_records WHERE timestamp < $1 AND is_archived = FALSE")).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountActiveBefore(context.Background(), models.KindAssessments, cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(42), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchivalRepositoryCountArchivedWindow(t *testing.T) {
	db, mock, cleanup := newArchivalRepoMock(t)
	defer cleanup()

	repo := NewArchivalRepository(db)
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM report_records WHERE is_archived = TRUE AND timestamp >= $1 AND timestamp < $2")).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountArchived(context.Background(), models.KindReports, &from, &to)
	require.NoError(t, err)
	require.Equal(t, int64(7), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchivalRepositoryCountArchivedNoWindow(t *testing.T) {
	db, mock, cleanup := newArchivalRepoMock(t)
	defer cleanup()

	repo := NewArchivalRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM user_logs WHERE is_archived = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountArchived(context.Background(), models.KindUserLogs, nil, nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchivalRepositoryArchiveBeforeCommits(t *testing.T) {
	db, mock, cleanup := newArchivalRepoMock(t)
	defer cleanup()

	repo := NewArchivalRepository(db)
	cutoff := time.Date(2024, 8, 24, 0, 0, 0, 0, time.UTC)
	archivedAt := cutoff.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE certificate_records SET is_archived = TRUE, archived_at = $2 WHERE timestamp < $1 AND is_archived = FALSE")).
		WithArgs(cutoff, archivedAt).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	affected, err := repo.ArchiveBefore(context.Background(), models.KindCertificates, cutoff, archivedAt)
	require.NoError(t, err)
	require.Equal(t, int64(5), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchivalRepositoryArchiveBeforeRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newArchivalRepoMock(t)
	defer cleanup()

	repo := NewArchivalRepository(db)
	cutoff := time.Date(2024, 8, 24, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE flood_activity_records SET is_archived = TRUE")).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	_, err := repo.ArchiveBefore(context.Background(), models.KindFloodActivities, cutoff, cutoff)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bulk update flood_activities")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchivalRepositoryRestoreArchived(t *testing.T) {
	db, mock, cleanup := newArchivalRepoMock(t)
	defer cleanup()

	repo := NewArchivalRepository(db)
	from := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE assessment_records SET is_archived = FALSE, archived_at = NULL WHERE is_archived = TRUE AND timestamp >= $1")).
		WithArgs(from).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	affected, err := repo.RestoreArchived(context.Background(), models.KindAssessments, &from, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchivalRepositoryKindTallies(t *testing.T) {
	db, mock, cleanup := newArchivalRepoMock(t)
	defer cleanup()

	repo := NewArchivalRepository(db)
	for range models.RecordKinds {
		mock.ExpectQuery("SELECT").
			WillReturnRows(sqlmock.NewRows([]string{"active", "archived"}).AddRow(10, 4))
	}

	tallies, err := repo.KindTallies(context.Background())
	require.NoError(t, err)
	require.Len(t, tallies, len(models.RecordKinds))
	require.Equal(t, int64(10), tallies[models.KindAssessments].Active)
	require.Equal(t, int64(4), tallies[models.KindUserLogs].Archived)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordKindTableRegistry(t *testing.T) {
	require.Equal(t, "assessment_records", models.KindAssessments.Table())
	require.Equal(t, "report_records", models.KindReports.Table())
	require.Equal(t, "certificate_records", models.KindCertificates.Table())
	require.Equal(t, "flood_activity_records", models.KindFloodActivities.Table())
	require.Equal(t, "user_logs", models.KindUserLogs.Table())

	require.True(t, models.RecordKind("reports").Valid())
	require.False(t, models.RecordKind("permits").Valid())
}
