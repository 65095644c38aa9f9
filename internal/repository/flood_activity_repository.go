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

const floodActivityColumns = `id, user_id, action, flood_record_id, event_type, event_date, affected_barangays, casualties_dead, casualties_injured, casualties_missing, affected_persons, affected_families, damage_total_php, timestamp, is_archived, archived_at`

// FloodActivityRepository provides database access for the flood event
// activity log.
type FloodActivityRepository struct {
	db *sqlx.DB
}

// NewFloodActivityRepository creates a new instance of FloodActivityRepository.
func NewFloodActivityRepository(db *sqlx.DB) *FloodActivityRepository {
	return &FloodActivityRepository{db: db}
}

// Create stores a new flood activity entry.
func (r *FloodActivityRepository) Create(ctx context.Context, record *models.FloodActivity) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	const query = `INSERT INTO flood_activity_records
	(id, user_id, action, flood_record_id, event_type, event_date, affected_barangays, casualties_dead, casualties_injured, casualties_missing, affected_persons, affected_families, damage_total_php, timestamp, is_archived, archived_at)
	VALUES (:id, :user_id, :action, :flood_record_id, :event_type, :event_date, :affected_barangays, :casualties_dead, :casualties_injured, :casualties_missing, :affected_persons, :affected_families, :damage_total_php, :timestamp, :is_archived, :archived_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create flood activity: %w", err)
	}
	return nil
}

// List returns flood activity entries matching the filter with a total count.
func (r *FloodActivityRepository) List(ctx context.Context, filter models.FloodActivityFilter) ([]models.FloodActivity, int, error) {
	conditions := []string{fmt.Sprintf("is_archived = %t", filter.Archived)}
	var args []interface{}

	if filter.Action != "" {
		args = append(args, filter.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM flood_activity_records`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count flood activities: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM flood_activity_records%s ORDER BY timestamp DESC LIMIT %d OFFSET %d`,
		floodActivityColumns, where, pageSize(filter.PageSize), pageOffset(filter.Page, filter.PageSize))

	var records []models.FloodActivity
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list flood activities: %w", err)
	}
	return records, total, nil
}

// ImpactTotals sums casualty and damage figures over active entries.
func (r *FloodActivityRepository) ImpactTotals(ctx context.Context) (*models.DashboardStats, error) {
	const query = `SELECT
		COALESCE(SUM(casualties_dead), 0) AS casualties_dead,
		COALESCE(SUM(casualties_injured), 0) AS casualties_injured,
		COALESCE(SUM(casualties_missing), 0) AS casualties_missing,
		COALESCE(SUM(affected_persons), 0) AS affected_persons,
		COALESCE(SUM(affected_families), 0) AS affected_families,
		COALESCE(SUM(damage_total_php), 0) AS damage_total_php
	FROM flood_activity_records WHERE is_archived = FALSE`

	var stats models.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("sum flood impact: %w", err)
	}
	return &stats, nil
}
