package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"context"

	"github.com/google/uuid"

	"github.com/neacisu/geniuserp-ledger/internal/apperrors"
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
	portssvc "github.com/neacisu/geniuserp-ledger/internal/core/ports/services"
	"github.com/neacisu/geniuserp-ledger/internal/middleware"
)

// fiscalPeriodService implements the period open/close/reopen state machine.
type fiscalPeriodService struct {
	periodRepo portsrepo.FiscalPeriodRepositoryFacade
	audit      portssvc.AuditLogger
}

// NewFiscalPeriodService creates a new FiscalPeriodService.
func NewFiscalPeriodService(periodRepo portsrepo.FiscalPeriodRepositoryFacade, audit portssvc.AuditLogger) portssvc.FiscalPeriodSvcFacade {
	return &fiscalPeriodService{
		periodRepo: periodRepo,
		audit:      audit,
	}
}

var _ portssvc.FiscalPeriodSvcFacade = (*fiscalPeriodService)(nil)

func validateYearMonth(year int, month int) error {
	if year < 1990 || year > 2999 {
		return fmt.Errorf("%w: year %d is out of range", apperrors.ErrValidation, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d is out of range", apperrors.ErrValidation, month)
	}
	return nil
}

// GetOrCreatePeriod lazily creates the (company, year, month) period in the
// open state. Safe to call concurrently; the repository upsert is idempotent.
func (s *fiscalPeriodService) GetOrCreatePeriod(ctx context.Context, companyID string, year int, month int, actorID string) (*domain.FiscalPeriod, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	candidate := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		CompanyID: companyID,
		Year:      year,
		Month:     month,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	period, err := s.periodRepo.GetOrCreatePeriod(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create fiscal period: %w", err)
	}
	return period, nil
}

// AssertOpen fails with ErrPeriodClosed when the period owning the date does
// not accept postings. A period that was never created counts as open.
func (s *fiscalPeriodService) AssertOpen(ctx context.Context, companyID string, date time.Time) error {
	year, month := date.Year(), int(date.Month())

	period, err := s.periodRepo.FindPeriod(ctx, companyID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Lazy-creation semantics: no row means the period was never
			// touched and is implicitly open.
			return nil
		}
		return fmt.Errorf("failed to check fiscal period %d-%02d: %w", year, month, err)
	}

	if period.IsClosed() {
		return fmt.Errorf("%w: period %d-%02d of company %s is %s",
			apperrors.ErrPeriodClosed, year, month, companyID, period.Status)
	}
	return nil
}

// ClosePeriod transitions open -> soft_close or open/soft_close -> hard_close.
func (s *fiscalPeriodService) ClosePeriod(ctx context.Context, companyID string, year int, month int, mode domain.PeriodStatus, actorID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !mode.IsClosed() {
		return nil, fmt.Errorf("%w: close mode must be %s or %s", apperrors.ErrValidation, domain.PeriodSoftClose, domain.PeriodHardClose)
	}

	// Closing a period that was never posted to is legitimate, so create it
	// on the fly before transitioning.
	period, err := s.GetOrCreatePeriod(ctx, companyID, year, month, actorID)
	if err != nil {
		return nil, err
	}

	if !period.Status.CanTransitionTo(mode) {
		return nil, fmt.Errorf("%w: cannot close period %d-%02d from %s to %s",
			apperrors.ErrConflict, year, month, period.Status, mode)
	}

	now := time.Now().UTC()
	expected := period.Status
	period.Status = mode
	period.ClosedAt = &now
	period.ClosedBy = &actorID
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	if err := s.periodRepo.UpdatePeriodStatus(ctx, *period, expected); err != nil {
		logger.Error("Failed to close fiscal period",
			slog.String("company_id", companyID),
			slog.Int("year", year), slog.Int("month", month),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to close fiscal period: %w", err)
	}

	logger.Info("Fiscal period closed",
		slog.String("company_id", companyID),
		slog.Int("year", year), slog.Int("month", month),
		slog.String("mode", string(mode)))

	s.audit.Record(ctx, domain.AuditEvent{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     domain.AuditPeriodClosed,
		EntityType: "fiscal_period",
		EntityID:   period.PeriodID,
		Detail: map[string]any{
			"year":  year,
			"month": month,
			"mode":  string(mode),
		},
	})

	return period, nil
}

// ReopenPeriod transitions a closed period back to open. The reason is
// mandatory and lands on the period's reopening audit trail.
func (s *fiscalPeriodService) ReopenPeriod(ctx context.Context, companyID string, year int, month int, actorID string, reason string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.ErrReopenReasonRequired
	}

	period, err := s.periodRepo.FindPeriod(ctx, companyID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal period %d-%02d: %w", year, month, err)
	}

	if !period.Status.IsClosed() {
		return nil, fmt.Errorf("%w: period %d-%02d is already open", apperrors.ErrConflict, year, month)
	}

	now := time.Now().UTC()
	expected := period.Status
	period.Status = domain.PeriodOpen
	period.ReopenedAt = &now
	period.ReopenedBy = &actorID
	period.ReopeningReason = &reason
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	if err := s.periodRepo.UpdatePeriodStatus(ctx, *period, expected); err != nil {
		logger.Error("Failed to reopen fiscal period",
			slog.String("company_id", companyID),
			slog.Int("year", year), slog.Int("month", month),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reopen fiscal period: %w", err)
	}

	logger.Info("Fiscal period reopened",
		slog.String("company_id", companyID),
		slog.Int("year", year), slog.Int("month", month),
		slog.String("reopened_by", actorID))

	s.audit.Record(ctx, domain.AuditEvent{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     domain.AuditPeriodReopened,
		EntityType: "fiscal_period",
		EntityID:   period.PeriodID,
		Detail: map[string]any{
			"year":   year,
			"month":  month,
			"reason": reason,
			"from":   string(expected),
		},
	})

	return period, nil
}

// GetPeriodStatus reports the status of (company, year, month); a period that
// was never created reports open, not an error.
func (s *fiscalPeriodService) GetPeriodStatus(ctx context.Context, companyID string, year int, month int) (domain.PeriodStatus, error) {
	if err := validateYearMonth(year, month); err != nil {
		return "", err
	}

	period, err := s.periodRepo.FindPeriod(ctx, companyID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.PeriodOpen, nil
		}
		return "", fmt.Errorf("failed to get fiscal period status: %w", err)
	}
	return period.Status, nil
}

// ListPeriods retrieves all periods of a company for one year.
func (s *fiscalPeriodService) ListPeriods(ctx context.Context, companyID string, year int) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriodsByCompanyYear(ctx, companyID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal periods: %w", err)
	}
	return periods, nil
}
