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

func newAssessmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAssessmentRepositoryCreateAssignsIDAndTimestamp(t *testing.T) {
	db, mock, cleanup := newAssessmentRepoMock(t)
	defer cleanup()

	repo := NewAssessmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO assessment_records")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.Assessment{
		UserID:               "user-1",
		Barangay:             "Guinhalaran",
		Latitude:             10.7926,
		Longitude:            122.9744,
		FloodRiskCode:        "VHF",
		FloodRiskDescription: "Very High Flood Susceptibility",
	}
	require.NoError(t, repo.Create(context.Background(), record))
	require.NotEmpty(t, record.ID)
	require.False(t, record.Timestamp.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newAssessmentRepoMock(t)
	defer cleanup()

	repo := NewAssessmentRepository(db)
	rows := sqlmock.NewRows([]string{"id", "user_id", "barangay", "latitude", "longitude", "flood_risk_code", "flood_risk_description", "timestamp", "is_archived", "archived_at"}).
		AddRow("assess-1", "user-1", "Mambulac", 10.8, 122.95, "MF", "Moderate Flood Susceptibility", time.Now(), false, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, barangay")).
		WithArgs("assess-1").
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), "assess-1")
	require.NoError(t, err)
	require.Equal(t, "assess-1", found.ID)
	require.Equal(t, "MF", found.FloodRiskCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryListFiltersAndArchivedView(t *testing.T) {
	db, mock, cleanup := newAssessmentRepoMock(t)
	defer cleanup()

	repo := NewAssessmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM assessment_records WHERE is_archived = true AND barangay = $1")).
		WithArgs("Balaring").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "user_id", "barangay", "latitude", "longitude", "flood_risk_code", "flood_risk_description", "timestamp", "is_archived", "archived_at"}).
		AddRow("assess-2", "user-1", "Balaring", 10.81, 122.96, "HF", "High Flood Susceptibility", time.Now(), true, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM assessment_records WHERE is_archived = true AND barangay = $1 ORDER BY timestamp DESC")).
		WithArgs("Balaring").
		WillReturnRows(rows)

	records, total, err := repo.List(context.Background(), models.AssessmentFilter{
		Barangay: "Balaring",
		Archived: true,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, records, 1)
	require.True(t, records[0].IsArchived)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageSizeBounds(t *testing.T) {
	require.Equal(t, 50, pageSize(0))
	require.Equal(t, 50, pageSize(-5))
	require.Equal(t, 20, pageSize(20))
	require.Equal(t, 10000, pageSize(50000))
	require.Equal(t, 0, pageOffset(1, 20))
	require.Equal(t, 40, pageOffset(3, 20))
	require.Equal(t, 0, pageOffset(0, 20))
}
