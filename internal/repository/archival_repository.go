package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/silay-drrmo/drrmo-api/internal/models"
)

// ArchivalRepository performs bulk archive/restore state flips over the
// activity record tables. All five kinds share the same
// timestamp/is_archived/archived_at triplet, so one repository serves every
// kind through the models.RecordKind table registry.
type ArchivalRepository struct {
	db *sqlx.DB
}

// NewArchivalRepository constructs the repository.
func NewArchivalRepository(db *sqlx.DB) *ArchivalRepository {
	return &ArchivalRepository{db: db}
}

// CountActiveBefore returns how many rows of the kind are not yet archived
// and strictly older than the cutoff. Read-only.
func (r *ArchivalRepository) CountActiveBefore(ctx context.Context, kind models.RecordKind, cutoff time.Time) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE timestamp < $1 AND is_archived = FALSE`, kind.Table())
	var count int64
	if err := r.db.GetContext(ctx, &count, query, cutoff); err != nil {
		return 0, fmt.Errorf("count active %s: %w", kind, err)
	}
	return count, nil
}

// CountArchived returns how many archived rows of the kind fall inside the
// optional timestamp window. from is an inclusive lower bound, to an
// exclusive upper bound. Read-only.
func (r *ArchivalRepository) CountArchived(ctx context.Context, kind models.RecordKind, from, to *time.Time) (int64, error) {
	query, args := archivedWindowQuery(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, kind.Table()), from, to)
	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count archived %s: %w", kind, err)
	}
	return count, nil
}

// ArchiveBefore flips every not-yet-archived row of the kind older than the
// cutoff to archived, stamping archived_at. The update runs in its own
// transaction: either all matching rows of this kind flip or none do. Other
// kinds already committed in the same run are unaffected by a failure here.
func (r *ArchivalRepository) ArchiveBefore(ctx context.Context, kind models.RecordKind, cutoff, archivedAt time.Time) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET is_archived = TRUE, archived_at = $2 WHERE timestamp < $1 AND is_archived = FALSE`, kind.Table())
	return r.bulkUpdate(ctx, kind, query, cutoff, archivedAt)
}

// RestoreArchived flips archived rows of the kind inside the optional
// timestamp window back to active, clearing archived_at. Same per-kind
// transaction scope as ArchiveBefore.
func (r *ArchivalRepository) RestoreArchived(ctx context.Context, kind models.RecordKind, from, to *time.Time) (int64, error) {
	query, args := archivedWindowQuery(fmt.Sprintf(`UPDATE %s SET is_archived = FALSE, archived_at = NULL`, kind.Table()), from, to)
	return r.bulkUpdate(ctx, kind, query, args...)
}

// KindTallies returns active/archived row counts for every record kind.
// Feeds the dashboard; not part of any archival run.
func (r *ArchivalRepository) KindTallies(ctx context.Context) (map[models.RecordKind]models.KindTally, error) {
	tallies := make(map[models.RecordKind]models.KindTally, len(models.RecordKinds))
	for _, kind := range models.RecordKinds {
		query := fmt.Sprintf(`SELECT
			COUNT(*) FILTER (WHERE is_archived = FALSE) AS active,
			COUNT(*) FILTER (WHERE is_archived = TRUE) AS archived
		FROM %s`, kind.Table())
		var tally models.KindTally
		if err := r.db.GetContext(ctx, &tally, query); err != nil {
			return nil, fmt.Errorf("tally %s: %w", kind, err)
		}
		tallies[kind] = tally
	}
	return tallies, nil
}

func (r *ArchivalRepository) bulkUpdate(ctx context.Context, kind models.RecordKind, query string, args ...interface{}) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin %s update: %w", kind, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("bulk update %s: %w", kind, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("count %s updated rows: %w", kind, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit %s update: %w", kind, err)
	}
	return affected, nil
}

// archivedWindowQuery appends the is_archived predicate plus the optional
// timestamp bounds to the given statement head.
func archivedWindowQuery(head string, from, to *time.Time) (string, []interface{}) {
	builder := strings.Builder{}
	builder.WriteString(head)
	builder.WriteString(" WHERE is_archived = TRUE")

	args := make([]interface{}, 0, 2)
	if from != nil {
		args = append(args, *from)
		builder.WriteString(fmt.Sprintf(" AND timestamp >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		builder.WriteString(fmt.Sprintf(" AND timestamp < $%d", len(args)))
	}
	return builder.String(), args
}
