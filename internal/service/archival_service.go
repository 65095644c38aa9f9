package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
)

type archivalStore interface {
	CountActiveBefore(ctx context.Context, kind models.RecordKind, cutoff time.Time) (int64, error)
	CountArchived(ctx context.Context, kind models.RecordKind, from, to *time.Time) (int64, error)
	ArchiveBefore(ctx context.Context, kind models.RecordKind, cutoff, archivedAt time.Time) (int64, error)
	RestoreArchived(ctx context.Context, kind models.RecordKind, from, to *time.Time) (int64, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// ArchiveOptions mirror the operator-facing archive flags.
type ArchiveOptions struct {
	DryRun      bool
	Execute     bool
	Years       int
	IncludeLogs bool
}

// RestoreOptions mirror the operator-facing restore flags. Type and the date
// range combine when both are given.
type RestoreOptions struct {
	DryRun   bool
	Execute  bool
	All      bool
	Type     string
	DateFrom string
	DateTo   string
}

// ConfirmFunc decides whether an execute run proceeds once counts are known.
// The CLI supplies an interactive prompt; non-interactive callers supply a
// pre-approved decision. Returning false cancels the run without error.
type ConfirmFunc func(models.ArchivalSummary) bool

// RunStatus describes how an archival run ended.
type RunStatus string

const (
	RunDryRun      RunStatus = "DRY_RUN"
	RunNothingToDo RunStatus = "NOTHING_TO_DO"
	RunCancelled   RunStatus = "CANCELLED"
	RunCompleted   RunStatus = "COMPLETED"
)

// ArchivalResult reports the outcome of an archive or restore run. Previewed
// counts are advisory; Applied carries the authoritative affected-row counts
// and is populated only for completed runs.
type ArchivalResult struct {
	Status    RunStatus               `json:"status"`
	Cutoff    *time.Time              `json:"cutoff,omitempty"`
	StartedAt time.Time               `json:"started_at,omitempty"`
	Previewed models.ArchivalSummary  `json:"previewed"`
	Applied   *models.ArchivalSummary `json:"applied,omitempty"`
}

// ArchivalService coordinates bulk archive/restore runs over the five
// activity record kinds.
type ArchivalService struct {
	store  archivalStore
	audit  auditLogger
	logger *zap.Logger
	now    func() time.Time
}

// NewArchivalService constructs the service.
func NewArchivalService(store archivalStore, audit auditLogger, logger *zap.Logger) *ArchivalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchivalService{
		store:  store,
		audit:  audit,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Archive marks records older than the years threshold as archived. Dry-run
// counts without mutating; execute requires the confirm callback to approve
// unless nothing matches. Each kind's flip runs in its own transaction, so a
// failure leaves earlier kinds committed and is reported as a fatal error.
func (s *ArchivalService) Archive(ctx context.Context, opts ArchiveOptions, confirm ConfirmFunc, actor *models.JWTClaims) (*ArchivalResult, error) {
	if err := validateRunMode(opts.DryRun, opts.Execute); err != nil {
		return nil, err
	}
	if opts.Years < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "years must be at least 1")
	}

	// The operator contract counts a year as 365 days.
	cutoff := s.now().AddDate(0, 0, -365*opts.Years)

	previewed := models.NewArchivalSummary()
	for _, kind := range models.RecordKinds {
		if kind == models.KindUserLogs && !opts.IncludeLogs {
			continue
		}
		count, err := s.store.CountActiveBefore(ctx, kind, cutoff)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to count %s", kind))
		}
		previewed.Set(kind, count)
	}

	result := &ArchivalResult{Cutoff: &cutoff, Previewed: previewed}
	if opts.DryRun {
		result.Status = RunDryRun
		return result, nil
	}
	if previewed.Total == 0 {
		result.Status = RunNothingToDo
		return result, nil
	}
	if confirm == nil || !confirm(previewed) {
		result.Status = RunCancelled
		return result, nil
	}

	startedAt := s.now()
	result.StartedAt = startedAt
	applied := models.NewArchivalSummary()
	for _, kind := range models.RecordKinds {
		if kind == models.KindUserLogs && !opts.IncludeLogs {
			continue
		}
		count, err := s.store.ArchiveBefore(ctx, kind, cutoff, startedAt)
		if err != nil {
			// Kinds committed earlier in this run stay committed.
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to archive %s", kind))
		}
		applied.Set(kind, count)
		s.logger.Info("archived records",
			zap.String("kind", string(kind)),
			zap.Int64("count", count),
			zap.Time("cutoff", cutoff))
	}

	result.Applied = &applied
	result.Status = RunCompleted
	s.emitAudit(ctx, models.AuditActionArchiveRun, applied, actor)
	return result, nil
}

// Restore flips archived records matching the selector back to active. At
// least one of all/type/date range must be supplied; type and range narrow
// together when combined.
func (s *ArchivalService) Restore(ctx context.Context, opts RestoreOptions, confirm ConfirmFunc, actor *models.JWTClaims) (*ArchivalResult, error) {
	if err := validateRunMode(opts.DryRun, opts.Execute); err != nil {
		return nil, err
	}
	plan, err := buildRestorePlan(opts)
	if err != nil {
		return nil, err
	}

	previewed := models.NewArchivalSummary()
	for _, kind := range plan.kinds {
		count, err := s.store.CountArchived(ctx, kind, plan.from, plan.to)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to count archived %s", kind))
		}
		previewed.Set(kind, count)
	}

	result := &ArchivalResult{Previewed: previewed}
	if opts.DryRun {
		result.Status = RunDryRun
		return result, nil
	}
	if previewed.Total == 0 {
		result.Status = RunNothingToDo
		return result, nil
	}
	if confirm == nil || !confirm(previewed) {
		result.Status = RunCancelled
		return result, nil
	}

	result.StartedAt = s.now()
	applied := models.NewArchivalSummary()
	for _, kind := range plan.kinds {
		count, err := s.store.RestoreArchived(ctx, kind, plan.from, plan.to)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to restore %s", kind))
		}
		applied.Set(kind, count)
		s.logger.Info("restored records",
			zap.String("kind", string(kind)),
			zap.Int64("count", count))
	}

	result.Applied = &applied
	result.Status = RunCompleted
	s.emitAudit(ctx, models.AuditActionRestoreRun, applied, actor)
	return result, nil
}

type restorePlan struct {
	kinds []models.RecordKind
	from  *time.Time
	to    *time.Time
}

func buildRestorePlan(opts RestoreOptions) (*restorePlan, error) {
	if !opts.All && opts.Type == "" && opts.DateFrom == "" && opts.DateTo == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "specify --all, --type, or a date range")
	}

	var from, to *time.Time
	if opts.DateFrom != "" {
		parsed, err := time.Parse("2006-01-02", opts.DateFrom)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date-from format, use YYYY-MM-DD")
		}
		from = &parsed
	}
	if opts.DateTo != "" {
		parsed, err := time.Parse("2006-01-02", opts.DateTo)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date-to format, use YYYY-MM-DD")
		}
		// The bound is an inclusive calendar day: advance to the following
		// midnight and compare exclusively.
		end := parsed.AddDate(0, 0, 1)
		to = &end
	}

	kinds := models.RecordKinds
	if opts.Type != "" {
		kind := models.RecordKind(opts.Type)
		if !kind.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown record type %q", opts.Type))
		}
		kinds = []models.RecordKind{kind}
	}
	return &restorePlan{kinds: kinds, from: from, to: to}, nil
}

func validateRunMode(dryRun, execute bool) error {
	if dryRun && execute {
		return appErrors.Clone(appErrors.ErrValidation, "cannot use both dry-run and execute")
	}
	if !dryRun && !execute {
		return appErrors.Clone(appErrors.ErrValidation, "specify either dry-run or execute")
	}
	return nil
}

func (s *ArchivalService) emitAudit(ctx context.Context, action string, applied models.ArchivalSummary, actor *models.JWTClaims) {
	if s.audit == nil {
		return
	}
	log := &models.AuditLog{
		Action:    action,
		Resource:  "records",
		NewValues: []byte(fmt.Sprintf(`{"total":%d}`, applied.Total)),
		IPAddress: "system",
		UserAgent: "archival-service",
	}
	if actor != nil {
		log.UserID = &actor.UserID
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record archival audit", zap.Error(err))
	}
}
