package services

import (
	"context"
	"time"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
)

// FiscalPeriodSvcFacade manages the open/soft_close/hard_close lifecycle of
// company accounting periods.
type FiscalPeriodSvcFacade interface {
	// GetOrCreatePeriod looks up the period for (company, year, month),
	// lazily creating it in the open state. Idempotent.
	GetOrCreatePeriod(ctx context.Context, companyID string, year int, month int, actorID string) (*domain.FiscalPeriod, error)

	// AssertOpen fails with ErrPeriodClosed when the period owning the given
	// date does not accept postings. A period never created counts as open.
	AssertOpen(ctx context.Context, companyID string, date time.Time) error

	// ClosePeriod transitions a period to soft_close or hard_close.
	ClosePeriod(ctx context.Context, companyID string, year int, month int, mode domain.PeriodStatus, actorID string) (*domain.FiscalPeriod, error)

	// ReopenPeriod transitions a closed period back to open, recording the
	// actor and a mandatory reason.
	ReopenPeriod(ctx context.Context, companyID string, year int, month int, actorID string, reason string) (*domain.FiscalPeriod, error)

	// GetPeriodStatus reports the status of (company, year, month); implicit
	// open when the period was never created.
	GetPeriodStatus(ctx context.Context, companyID string, year int, month int) (domain.PeriodStatus, error)

	// ListPeriods retrieves all periods of a company for one year.
	ListPeriods(ctx context.Context, companyID string, year int) ([]domain.FiscalPeriod, error)
}
