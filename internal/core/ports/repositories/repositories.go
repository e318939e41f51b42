package repositories

// RepositoryProvider bundles all repository implementations for dependency
// injection into the service container.
type RepositoryProvider struct {
	LedgerRepo       LedgerRepositoryWithTx
	FiscalPeriodRepo FiscalPeriodRepositoryFacade
	CounterRepo      DocumentCounterRepository
	AuditRepo        AuditLogWriter
}
