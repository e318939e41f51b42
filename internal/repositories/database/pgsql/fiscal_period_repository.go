package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neacisu/geniuserp-ledger/internal/apperrors"
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
	"github.com/neacisu/geniuserp-ledger/internal/models"
	"github.com/neacisu/geniuserp-ledger/internal/utils/mapping"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

// newPgxFiscalPeriodRepository creates a new repository for fiscal period data.
func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepositoryFacade {
	return &PgxFiscalPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*PgxFiscalPeriodRepository)(nil)

const periodColumns = `
	period_id, company_id, year, month, status,
	closed_at, closed_by, reopened_at, reopened_by, reopening_reason,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (*models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.CompanyID,
		&m.Year,
		&m.Month,
		&m.Status,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.ReopenedAt,
		&m.ReopenedBy,
		&m.ReopeningReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPeriod retrieves the period row for (company, year, month).
func (r *PgxFiscalPeriodRepository) FindPeriod(ctx context.Context, companyID string, year int, month int) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE company_id = $1 AND year = $2 AND month = $3;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, companyID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find fiscal period %s %d-%02d", companyID, year, month), err)
	}

	period := mapping.ToDomainFiscalPeriod(*m)
	return &period, nil
}

// GetOrCreatePeriod inserts the period row if absent and returns the current
// row either way. ON CONFLICT DO NOTHING keeps concurrent first postings
// idempotent.
func (r *PgxFiscalPeriodRepository) GetOrCreatePeriod(ctx context.Context, period domain.FiscalPeriod) (*domain.FiscalPeriod, error) {
	m := mapping.ToModelFiscalPeriod(period)

	insertQuery := `
		INSERT INTO fiscal_periods (
			period_id, company_id, year, month, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id, year, month) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, insertQuery,
		m.PeriodID,
		m.CompanyID,
		m.Year,
		m.Month,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to create fiscal period %s %d-%02d", period.CompanyID, period.Year, period.Month), err)
	}

	// Re-read: either the row just inserted or the pre-existing one.
	return r.FindPeriod(ctx, period.CompanyID, period.Year, period.Month)
}

// UpdatePeriodStatus persists a status transition, conditional on the
// expected current status so racing transitions lose cleanly.
func (r *PgxFiscalPeriodRepository) UpdatePeriodStatus(ctx context.Context, period domain.FiscalPeriod, expectedStatus domain.PeriodStatus) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		UPDATE fiscal_periods
		SET status = $4,
		    closed_at = $5,
		    closed_by = $6,
		    reopened_at = $7,
		    reopened_by = $8,
		    reopening_reason = $9,
		    last_updated_at = $10,
		    last_updated_by = $11
		WHERE company_id = $1 AND year = $2 AND month = $3 AND status = $12;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.Year,
		m.Month,
		m.Status,
		m.ClosedAt,
		m.ClosedBy,
		m.ReopenedAt,
		m.ReopenedBy,
		m.ReopeningReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(expectedStatus),
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update fiscal period %s %d-%02d", period.CompanyID, period.Year, period.Month), err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %d-%02d changed concurrently (expected status %s)",
			apperrors.ErrConflict, period.Year, period.Month, expectedStatus)
	}
	return nil
}

// GetStatusInTx reads the period status inside an open transaction, taking a
// shared row lock so a concurrent close cannot commit between this check and
// the entry insert that follows it. No row means the period was never
// created, which counts as open.
func (r *PgxFiscalPeriodRepository) GetStatusInTx(ctx context.Context, tx pgx.Tx, companyID string, year int, month int) (domain.PeriodStatus, error) {
	query := `
		SELECT status
		FROM fiscal_periods
		WHERE company_id = $1 AND year = $2 AND month = $3
		FOR SHARE;
	`
	var status string
	err := tx.QueryRow(ctx, query, companyID, year, month).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PeriodOpen, nil
		}
		return "", apperrors.NewAppError(500, fmt.Sprintf("failed to read fiscal period status %s %d-%02d", companyID, year, month), err)
	}
	return domain.PeriodStatus(status), nil
}

// ListPeriodsByCompanyYear retrieves all periods of a company for one year.
func (r *PgxFiscalPeriodRepository) ListPeriodsByCompanyYear(ctx context.Context, companyID string, year int) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE company_id = $1 AND year = $2
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, year)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to list fiscal periods for company %s year %d", companyID, year), err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal period row", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(*m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal period rows", err)
	}
	return periods, nil
}
