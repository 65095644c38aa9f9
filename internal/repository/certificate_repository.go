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

const certificateColumns = `id, user_id, assessment_id, establishment_name, owner_name, location, barangay, latitude, longitude, flood_susceptibility, zone_status, issue_date, timestamp, is_archived, archived_at`

// CertificateRepository provides database access for zoning certificates.
type CertificateRepository struct {
	db *sqlx.DB
}

// NewCertificateRepository creates a new instance of CertificateRepository.
func NewCertificateRepository(db *sqlx.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Create stores a new certificate record.
func (r *CertificateRepository) Create(ctx context.Context, record *models.Certificate) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	const query = `INSERT INTO certificate_records
	(id, user_id, assessment_id, establishment_name, owner_name, location, barangay, latitude, longitude, flood_susceptibility, zone_status, issue_date, timestamp, is_archived, archived_at)
	VALUES (:id, :user_id, :assessment_id, :establishment_name, :owner_name, :location, :barangay, :latitude, :longitude, :flood_susceptibility, :zone_status, :issue_date, :timestamp, :is_archived, :archived_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	return nil
}

// FindByID returns one certificate record.
func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*models.Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM certificate_records WHERE id = $1`, certificateColumns)
	var record models.Certificate
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns certificates matching the filter with a total count. Search
// matches establishment and owner names.
func (r *CertificateRepository) List(ctx context.Context, filter models.CertificateFilter) ([]models.Certificate, int, error) {
	conditions := []string{fmt.Sprintf("is_archived = %t", filter.Archived)}
	var args []interface{}

	if filter.Barangay != "" {
		args = append(args, filter.Barangay)
		conditions = append(conditions, fmt.Sprintf("barangay = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(establishment_name ILIKE $%d OR owner_name ILIKE $%d)", len(args), len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM certificate_records`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count certificates: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM certificate_records%s ORDER BY timestamp DESC LIMIT %d OFFSET %d`,
		certificateColumns, where, pageSize(filter.PageSize), pageOffset(filter.Page, filter.PageSize))

	var records []models.Certificate
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list certificates: %w", err)
	}
	return records, total, nil
}
