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

const userLogColumns = `id, user_id, action, detail, ip_address, user_agent, timestamp, is_archived, archived_at`

// UserLogRepository provides database access for the user activity log.
type UserLogRepository struct {
	db *sqlx.DB
}

// NewUserLogRepository creates a new instance of UserLogRepository.
func NewUserLogRepository(db *sqlx.DB) *UserLogRepository {
	return &UserLogRepository{db: db}
}

// Create appends a user activity entry.
func (r *UserLogRepository) Create(ctx context.Context, entry *models.UserLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	const query = `INSERT INTO user_logs
	(id, user_id, action, detail, ip_address, user_agent, timestamp, is_archived, archived_at)
	VALUES (:id, :user_id, :action, :detail, :ip_address, :user_agent, :timestamp, :is_archived, :archived_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create user log: %w", err)
	}
	return nil
}

// List returns user activity entries matching the filter with a total count.
func (r *UserLogRepository) List(ctx context.Context, filter models.UserLogFilter) ([]models.UserLog, int, error) {
	conditions := []string{fmt.Sprintf("is_archived = %t", filter.Archived)}
	var args []interface{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM user_logs`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count user logs: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM user_logs%s ORDER BY timestamp DESC LIMIT %d OFFSET %d`,
		userLogColumns, where, pageSize(filter.PageSize), pageOffset(filter.Page, filter.PageSize))

	var entries []models.UserLog
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list user logs: %w", err)
	}
	return entries, total, nil
}
