package services

import (
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since the ledger service depends on it
	container.Account = NewChartAccountService(repos.AccountRepo)

	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Account)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Reconciliation = NewReconciliationService(
		repos.StatementRepo,
		repos.ReconciliationRepo,
		repos.LedgerRepo,
		container.Ledger,
	)

	return container
}
