package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/silay-drrmo/drrmo-api/internal/models"
)

const reportColumns = `id, user_id, assessment_id, barangay, latitude, longitude, flood_risk_code, flood_risk_label, timestamp, is_archived, archived_at`

// ReportRepository provides database access for generated flood-risk reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create stores a new report record.
func (r *ReportRepository) Create(ctx context.Context, record *models.Report) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	const query = `INSERT INTO report_records
	(id, user_id, assessment_id, barangay, latitude, longitude, flood_risk_code, flood_risk_label, timestamp, is_archived, archived_at)
	VALUES (:id, :user_id, :assessment_id, :barangay, :latitude, :longitude, :flood_risk_code, :flood_risk_label, :timestamp, :is_archived, :archived_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// FindByID returns one report record.
func (r *ReportRepository) FindByID(ctx context.Context, id string) (*models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM report_records WHERE id = $1`, reportColumns)
	var record models.Report
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns reports matching the filter with a total count.
func (r *ReportRepository) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int, error) {
	conditions := []string{fmt.Sprintf("is_archived = %t", filter.Archived)}
	var args []interface{}

	if filter.Barangay != "" {
		args = append(args, filter.Barangay)
		conditions = append(conditions, fmt.Sprintf("barangay = $%d", len(args)))
	}
	if filter.FloodRiskCode != "" {
		args = append(args, filter.FloodRiskCode)
		conditions = append(conditions, fmt.Sprintf("flood_risk_code = $%d", len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM report_records`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM report_records%s ORDER BY timestamp DESC LIMIT %d OFFSET %d`,
		reportColumns, where, pageSize(filter.PageSize), pageOffset(filter.Page, filter.PageSize))

	var records []models.Report
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	return records, total, nil
}
