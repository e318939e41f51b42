package services

import (
	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
	portssvc "github.com/neacisu/geniuserp-ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first; the other services emit events through it.
	container.Audit = NewAuditLogService(repos.AuditRepo)

	container.FiscalPeriod = NewFiscalPeriodService(repos.FiscalPeriodRepo, container.Audit)
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.FiscalPeriod, container.Audit)
	container.Numbering = NewJournalNumberingService(repos.LedgerRepo, repos.CounterRepo)

	return container
}
