package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql-backed repositories against a shared
// connection pool. The ledger repository gets the period and counter
// repositories injected so posting can re-check the period and allocate the
// journal number inside its own transaction.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	periodRepo := newPgxFiscalPeriodRepository(pool)
	counterRepo := newPgxCounterRepository(pool)
	ledgerRepo := newPgxLedgerRepository(pool, periodRepo, counterRepo)
	auditRepo := newPgxAuditLogRepository(pool)

	return &portsrepo.RepositoryProvider{
		LedgerRepo:       ledgerRepo,
		FiscalPeriodRepo: periodRepo,
		CounterRepo:      counterRepo,
		AuditRepo:        auditRepo,
	}
}
