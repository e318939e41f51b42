package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal period data
type FiscalPeriodReader interface {
	// FindPeriod retrieves the period row for (company, year, month).
	// Returns ErrNotFound when the period was never created.
	FindPeriod(ctx context.Context, companyID string, year int, month int) (*domain.FiscalPeriod, error)

	// ListPeriodsByCompanyYear retrieves all periods of a company for one year,
	// ordered by month.
	ListPeriodsByCompanyYear(ctx context.Context, companyID string, year int) ([]domain.FiscalPeriod, error)

	// GetStatusInTx reads the period status inside an open transaction,
	// taking a shared row lock so a concurrent close cannot slip between the
	// check and the insert that follows. A period that was never created
	// reports open.
	GetStatusInTx(ctx context.Context, tx pgx.Tx, companyID string, year int, month int) (domain.PeriodStatus, error)
}

// FiscalPeriodWriter defines write operations for fiscal period data
type FiscalPeriodWriter interface {
	// GetOrCreatePeriod inserts the period row if absent and returns the
	// current row either way. Idempotent.
	GetOrCreatePeriod(ctx context.Context, period domain.FiscalPeriod) (*domain.FiscalPeriod, error)

	// UpdatePeriodStatus persists a status transition. The update is
	// conditional on the expected current status; a concurrent transition
	// surfaces as ErrConflict.
	UpdatePeriodStatus(ctx context.Context, period domain.FiscalPeriod, expectedStatus domain.PeriodStatus) error
}

// FiscalPeriodRepositoryFacade combines all fiscal period repository interfaces
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}
