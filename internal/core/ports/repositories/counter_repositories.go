package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
)

// DocumentCounterRepository manages the per (company, journal type, year)
// document sequences backing journal numbers.
type DocumentCounterRepository interface {
	// NextValue atomically increments and returns the sequence for the key,
	// creating the counter row on first use. It runs inside the caller's
	// transaction so an abort releases the value as a permanent gap instead
	// of a duplicate. Single SQL statement; never read-then-write.
	NextValue(ctx context.Context, tx pgx.Tx, companyID string, counterType domain.JournalType, year int) (int64, error)

	// CurrentValue reads the last handed-out value without consuming one.
	// Returns 0 when the counter row does not exist yet.
	CurrentValue(ctx context.Context, companyID string, counterType domain.JournalType, year int) (int64, error)
}
