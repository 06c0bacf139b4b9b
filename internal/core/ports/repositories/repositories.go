package repositories

// RepositoryProvider bundles all repository facades for dependency injection.
type RepositoryProvider struct {
	AccountRepo        ChartAccountRepositoryFacade
	LedgerRepo         LedgerRepositoryWithTx
	StatementRepo      StatementRepositoryFacade
	ReconciliationRepo ReconciliationRepositoryFacade
	ReportingRepo      ReportingRepository
}
