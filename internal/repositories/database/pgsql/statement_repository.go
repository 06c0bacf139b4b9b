package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	"github.com/propfolio/property_ledger/internal/models"
	"github.com/propfolio/property_ledger/internal/utils/mapping"
)

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for bank statement data.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxStatementRepository implements portsrepo.StatementRepositoryFacade
var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

const bankTransactionColumns = `transaction_id, statement_id, transaction_date, amount, description, reference_number, running_balance`

// SaveStatement persists a statement and its owned transactions in one DB
// transaction.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, statement domain.BankStatement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBankStatement(statement)
	statementQuery := `
		INSERT INTO bank_statements (
			statement_id, bank_ledger_id, period_start, period_end,
			opening_balance, closing_balance,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, statementQuery,
		m.StatementID,
		m.BankLedgerID,
		m.PeriodStart,
		m.PeriodEnd,
		m.OpeningBalance,
		m.ClosingBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert statement "+m.StatementID, err)
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO bank_transactions (` + bankTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, txn := range statement.Transactions {
		mt := mapping.ToModelBankTransaction(txn)
		batch.Queue(txnQuery,
			mt.TransactionID,
			mt.StatementID,
			mt.TransactionDate,
			mt.Amount,
			mt.Description,
			mt.ReferenceNumber,
			mt.RunningBalance,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute bank transaction batch for statement "+m.StatementID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxStatementRepository) scanStatementRow(row pgx.Row) (*models.BankStatement, error) {
	var m models.BankStatement
	err := row.Scan(
		&m.StatementID,
		&m.BankLedgerID,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.OpeningBalance,
		&m.ClosingBalance,
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

// findStatementTransactions loads the transactions belonging to a statement,
// ordered by date.
func (r *PgxStatementRepository) findStatementTransactions(ctx context.Context, statementID string) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE statement_id = $1
		ORDER BY transaction_date, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for statement %s: %w", statementID, err)
	}
	defer rows.Close()

	txns := []models.BankTransaction{}
	for rows.Next() {
		var t models.BankTransaction
		if err := rows.Scan(
			&t.TransactionID,
			&t.StatementID,
			&t.TransactionDate,
			&t.Amount,
			&t.Description,
			&t.ReferenceNumber,
			&t.RunningBalance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank transaction rows: %w", err)
	}

	return mapping.ToDomainBankTransactionSlice(txns), nil
}

const bankStatementColumns = `statement_id, bank_ledger_id, period_start, period_end, opening_balance, closing_balance, created_at, created_by, last_updated_at, last_updated_by`

// FindStatementByID retrieves a statement together with its transactions.
func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	query := `SELECT ` + bankStatementColumns + ` FROM bank_statements WHERE statement_id = $1;`

	m, err := r.scanStatementRow(r.Pool.QueryRow(ctx, query, statementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find statement %s: %w", statementID, err)
	}

	statement := mapping.ToDomainBankStatement(*m)
	statement.Transactions, err = r.findStatementTransactions(ctx, statementID)
	if err != nil {
		return nil, err
	}
	return &statement, nil
}

// FindLatestStatement retrieves the statement with the most recent period end
// for a bank ledger.
func (r *PgxStatementRepository) FindLatestStatement(ctx context.Context, bankLedgerID string) (*domain.BankStatement, error) {
	query := `
		SELECT ` + bankStatementColumns + `
		FROM bank_statements
		WHERE bank_ledger_id = $1
		ORDER BY period_end DESC
		LIMIT 1;
	`
	m, err := r.scanStatementRow(r.Pool.QueryRow(ctx, query, bankLedgerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest statement for bank ledger %s: %w", bankLedgerID, err)
	}

	statement := mapping.ToDomainBankStatement(*m)
	statement.Transactions, err = r.findStatementTransactions(ctx, statement.StatementID)
	if err != nil {
		return nil, err
	}
	return &statement, nil
}

// HasOverlappingStatement reports whether any statement for the bank ledger
// overlaps the given period.
func (r *PgxStatementRepository) HasOverlappingStatement(ctx context.Context, bankLedgerID string, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bank_statements
			WHERE bank_ledger_id = $1
			  AND period_start <= $3
			  AND period_end >= $2
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, bankLedgerID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check statement overlap for bank ledger %s: %w", bankLedgerID, err)
	}
	return exists, nil
}

// FindUnmatchedTransactions retrieves statement transactions for a bank ledger
// that are not yet part of any reconciliation match.
func (r *PgxStatementRepository) FindUnmatchedTransactions(ctx context.Context, bankLedgerID string) ([]domain.BankTransaction, error) {
	query := `
		SELECT t.transaction_id, t.statement_id, t.transaction_date, t.amount, t.description, t.reference_number, t.running_balance
		FROM bank_transactions t
		JOIN bank_statements s ON t.statement_id = s.statement_id
		WHERE s.bank_ledger_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM reconciliation_matches m WHERE m.bank_transaction_id = t.transaction_id
		  )
		ORDER BY t.transaction_date, t.transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, bankLedgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unmatched transactions for bank ledger %s: %w", bankLedgerID, err)
	}
	defer rows.Close()

	txns := []models.BankTransaction{}
	for rows.Next() {
		var t models.BankTransaction
		var runningBalance *decimal.Decimal
		if err := rows.Scan(
			&t.TransactionID,
			&t.StatementID,
			&t.TransactionDate,
			&t.Amount,
			&t.Description,
			&t.ReferenceNumber,
			&runningBalance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank transaction row: %w", err)
		}
		t.RunningBalance = runningBalance
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank transaction rows: %w", err)
	}

	return mapping.ToDomainBankTransactionSlice(txns), nil
}
