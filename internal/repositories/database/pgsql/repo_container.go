package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxChartAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	statementRepo := newPgxStatementRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		LedgerRepo:         ledgerRepo,
		StatementRepo:      statementRepo,
		ReconciliationRepo: reconciliationRepo,
		ReportingRepo:      reportingRepo,
	}
}
