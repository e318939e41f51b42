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
)

type PgxCounterRepository struct {
	BaseRepository
}

// newPgxCounterRepository creates a new repository for document counters.
func newPgxCounterRepository(pool *pgxpool.Pool) portsrepo.DocumentCounterRepository {
	return &PgxCounterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentCounterRepository = (*PgxCounterRepository)(nil)

// NextValue increments and returns the sequence for (company, type, year) in
// one statement. The upsert creates the counter row at 1 on first use; any
// later call increments under the row lock the UPDATE takes, so two
// concurrent postings can never observe the same value. Runs inside the
// caller's transaction: if that transaction aborts, the increment rolls back
// with it and the value is reissued to the next posting, keeping committed
// numbers gap-free.
func (r *PgxCounterRepository) NextValue(ctx context.Context, tx pgx.Tx, companyID string, counterType domain.JournalType, year int) (int64, error) {
	query := `
		INSERT INTO document_counters (company_id, counter_type, year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, counter_type, year)
		DO UPDATE SET last_value = document_counters.last_value + 1
		RETURNING last_value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, companyID, string(counterType), year).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500,
			fmt.Sprintf("failed to allocate sequence for company %s type %s year %d", companyID, counterType, year),
			fmt.Errorf("%w: %w", apperrors.ErrCounterAllocationFailed, err))
	}
	return value, nil
}

// CurrentValue reads the last handed-out value without consuming one.
func (r *PgxCounterRepository) CurrentValue(ctx context.Context, companyID string, counterType domain.JournalType, year int) (int64, error) {
	query := `
		SELECT last_value
		FROM document_counters
		WHERE company_id = $1 AND counter_type = $2 AND year = $3;
	`
	var value int64
	err := r.Pool.QueryRow(ctx, query, companyID, string(counterType), year).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, apperrors.NewAppError(500, "failed to read document counter", err)
	}
	return value, nil
}
