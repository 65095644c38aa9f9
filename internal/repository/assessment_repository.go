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

const assessmentColumns = `id, user_id, barangay, latitude, longitude, flood_risk_code, flood_risk_description, timestamp, is_archived, archived_at`

// AssessmentRepository provides database access for assessment records.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new instance of AssessmentRepository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Create stores a new assessment record.
func (r *AssessmentRepository) Create(ctx context.Context, record *models.Assessment) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	const query = `INSERT INTO assessment_records
	(id, user_id, barangay, latitude, longitude, flood_risk_code, flood_risk_description, timestamp, is_archived, archived_at)
	VALUES (:id, :user_id, :barangay, :latitude, :longitude, :flood_risk_code, :flood_risk_description, :timestamp, :is_archived, :archived_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// FindByID returns one assessment record.
func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*models.Assessment, error) {
	query := fmt.Sprintf(`SELECT %s FROM assessment_records WHERE id = $1`, assessmentColumns)
	var record models.Assessment
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns assessments matching the filter with a total count. The
// archived toggle switches between the default active view and the archived
// records view.
func (r *AssessmentRepository) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, int, error) {
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
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM assessment_records`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count assessments: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM assessment_records%s ORDER BY timestamp DESC LIMIT %d OFFSET %d`,
		assessmentColumns, where, pageSize(filter.PageSize), pageOffset(filter.Page, filter.PageSize))

	var records []models.Assessment
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list assessments: %w", err)
	}
	return records, total, nil
}

// pageSize defaults to 50 rows and caps at 10000, the ceiling used by the
// bulk export paths.
func pageSize(size int) int {
	if size <= 0 {
		return 50
	}
	if size > 10000 {
		return 10000
	}
	return size
}

func pageOffset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize(size)
}
