package services

// ServiceContainer bundles all service facades for dependency injection.
type ServiceContainer struct {
	Account        ChartAccountSvcFacade
	Ledger         LedgerSvcFacade
	Reporting      ReportingSvcFacade
	Reconciliation ReconciliationSvcFacade
}
