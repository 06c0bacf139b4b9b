package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	"github.com/propfolio/property_ledger/internal/models"
	"github.com/propfolio/property_ledger/internal/utils/mapping"
	"github.com/propfolio/property_ledger/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for bank ledger and entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const bankLedgerColumns = `bank_ledger_id, entity_id, account_name, account_number, chart_account_id, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

const ledgerEntryColumns = `entry_id, bank_ledger_id, chart_account_id, debit_amount, credit_amount, amount, transaction_type, description, transaction_date, reference_id, reference_number, reconciled, running_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanBankLedger(row pgx.Row) (*models.BankLedger, error) {
	var m models.BankLedger
	err := row.Scan(
		&m.BankLedgerID,
		&m.EntityID,
		&m.AccountName,
		&m.AccountNumber,
		&m.ChartAccountID,
		&m.CurrentBalance,
		&m.IsActive,
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

func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.BankLedgerID,
		&m.ChartAccountID,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.Amount,
		&m.TransactionType,
		&m.Description,
		&m.TransactionDate,
		&m.ReferenceID,
		&m.ReferenceNumber,
		&m.Reconciled,
		&m.RunningBalance,
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

// SaveBankLedger inserts a new bank ledger.
func (r *PgxLedgerRepository) SaveBankLedger(ctx context.Context, ledger domain.BankLedger) error {
	m := mapping.ToModelBankLedger(ledger)

	query := `
		INSERT INTO bank_ledgers (` + bankLedgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankLedgerID,
		m.EntityID,
		m.AccountName,
		m.AccountNumber,
		m.ChartAccountID,
		m.CurrentBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bank ledger %s: %w", m.BankLedgerID, err)
	}
	return nil
}

// FindBankLedgerByID retrieves a bank ledger by its ID.
func (r *PgxLedgerRepository) FindBankLedgerByID(ctx context.Context, bankLedgerID string) (*domain.BankLedger, error) {
	query := `SELECT ` + bankLedgerColumns + ` FROM bank_ledgers WHERE bank_ledger_id = $1;`

	m, err := scanBankLedger(r.Pool.QueryRow(ctx, query, bankLedgerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank ledger %s: %w", bankLedgerID, err)
	}

	ledger := mapping.ToDomainBankLedger(*m)
	return &ledger, nil
}

// ListBankLedgers retrieves all active bank ledgers for an entity.
func (r *PgxLedgerRepository) ListBankLedgers(ctx context.Context, entityID string) ([]domain.BankLedger, error) {
	query := `SELECT ` + bankLedgerColumns + ` FROM bank_ledgers WHERE entity_id = $1 AND is_active = TRUE ORDER BY account_name;`

	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank ledgers for entity %s: %w", entityID, err)
	}
	defer rows.Close()

	ledgers := []domain.BankLedger{}
	for rows.Next() {
		m, err := scanBankLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank ledger row: %w", err)
		}
		ledgers = append(ledgers, mapping.ToDomainBankLedger(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank ledger rows: %w", err)
	}

	return ledgers, nil
}

// SaveEntries persists a validated balanced set and applies the cash-leg
// balance deltas within a single DB transaction. Affected bank ledger rows are
// locked first so concurrent writers to the same ledger serialize, and each
// cash leg is stored with the running balance it produced.
func (r *PgxLedgerRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry, balanceDeltas map[string]decimal.Decimal) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// 1. Lock the affected bank ledgers and read their current balances
	ledgerIDs := make([]string, 0, len(balanceDeltas))
	for id := range balanceDeltas {
		ledgerIDs = append(ledgerIDs, id)
	}

	lockQuery := `
		SELECT bank_ledger_id, chart_account_id, current_balance
		FROM bank_ledgers
		WHERE bank_ledger_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, ledgerIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock bank ledgers", err)
	}

	type lockedLedger struct {
		chartAccountID string
		balance        decimal.Decimal
	}
	locked := make(map[string]lockedLedger, len(ledgerIDs))
	for rows.Next() {
		var id, chartAccountID string
		var balance decimal.Decimal
		if err := rows.Scan(&id, &chartAccountID, &balance); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked bank ledger", err)
		}
		locked[id] = lockedLedger{chartAccountID: chartAccountID, balance: balance}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating locked bank ledgers", err)
	}
	for _, id := range ledgerIDs {
		if _, ok := locked[id]; !ok {
			return fmt.Errorf("%w: bank ledger %s", apperrors.ErrNotFound, id)
		}
	}

	// 2. Insert entries, tracking the running balance per cash leg
	runningBalances := make(map[string]decimal.Decimal, len(locked))
	for id, l := range locked {
		runningBalances[id] = l.balance
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)

		if l, ok := locked[entry.BankLedgerID]; ok && entry.ChartAccountID == l.chartAccountID {
			newBalance := runningBalances[entry.BankLedgerID].Add(entry.SignedAmount())
			m.RunningBalance = newBalance
			runningBalances[entry.BankLedgerID] = newBalance
		}

		batch.Queue(entryQuery,
			m.EntryID,
			m.BankLedgerID,
			m.ChartAccountID,
			m.DebitAmount,
			m.CreditAmount,
			m.Amount,
			m.TransactionType,
			m.Description,
			m.TransactionDate,
			m.ReferenceID,
			m.ReferenceNumber,
			m.Reconciled,
			m.RunningBalance,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	// 3. Apply balance deltas to the locked ledgers
	now := entries[0].CreatedAt
	userID := entries[0].CreatedBy
	balanceQuery := `
		UPDATE bank_ledgers
		SET current_balance = current_balance + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE bank_ledger_id = $1;
	`
	for id, delta := range balanceDeltas {
		batch.Queue(balanceQuery, id, delta, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute ledger entry batch", err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a single ledger entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

// DeleteEntry removes an entry and reverses its balance delta on the owning
// bank ledger atomically.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entry domain.LedgerEntry, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT current_balance FROM bank_ledgers WHERE bank_ledger_id = $1 FOR UPDATE;`
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, lockQuery, entry.BankLedgerID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: bank ledger %s", apperrors.ErrNotFound, entry.BankLedgerID)
		}
		return apperrors.NewAppError(500, "failed to lock bank ledger "+entry.BankLedgerID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1 AND reconciled = FALSE;`, entry.EntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entry.EntryID)
	}

	if !balanceDelta.IsZero() {
		balanceQuery := `
			UPDATE bank_ledgers
			SET current_balance = current_balance + $2,
			    last_updated_at = $3,
			    last_updated_by = $4
			WHERE bank_ledger_id = $1;
		`
		if _, err := tx.Exec(ctx, balanceQuery, entry.BankLedgerID, balanceDelta, time.Now().UTC(), entry.LastUpdatedBy); err != nil {
			return apperrors.NewAppError(500, "failed to reverse balance for bank ledger "+entry.BankLedgerID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// ListEntries retrieves a paginated list of entries for an entity using
// token-based pagination. Entity scope comes from joining through the owning
// bank ledger, never from the filter.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, entityID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.bank_ledger_id, e.chart_account_id, e.debit_amount, e.credit_amount, e.amount,
		       e.transaction_type, e.description, e.transaction_date, e.reference_id, e.reference_number,
		       e.reconciled, e.running_balance, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM ledger_entries e
		JOIN bank_ledgers bl ON e.bank_ledger_id = bl.bank_ledger_id
		WHERE bl.entity_id = $1
	`
	args := []interface{}{entityID}

	appendClause := func(clause string, value interface{}) string {
		args = append(args, value)
		return " AND " + clause + " $" + strconv.Itoa(len(args))
	}

	query := baseQuery
	if filter.BankLedgerID != nil {
		query += appendClause("e.bank_ledger_id =", *filter.BankLedgerID)
	}
	if filter.ChartAccountID != nil {
		query += appendClause("e.chart_account_id =", *filter.ChartAccountID)
	}
	if filter.From != nil {
		query += appendClause("e.transaction_date >=", *filter.From)
	}
	if filter.To != nil {
		query += appendClause("e.transaction_date <=", *filter.To)
	}
	if filter.Reconciled != nil {
		query += appendClause("e.reconciled =", *filter.Reconciled)
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += " AND (e.transaction_date, e.created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY e.transaction_date DESC, e.created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries for entity %s: %w", entityID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}

// FindUnreconciledCashLegs retrieves the unreconciled cash-leg entries of a
// bank ledger, oldest first, optionally restricted to a date range.
func (r *PgxLedgerRepository) FindUnreconciledCashLegs(ctx context.Context, bankLedgerID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT e.entry_id, e.bank_ledger_id, e.chart_account_id, e.debit_amount, e.credit_amount, e.amount,
		       e.transaction_type, e.description, e.transaction_date, e.reference_id, e.reference_number,
		       e.reconciled, e.running_balance, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM ledger_entries e
		JOIN bank_ledgers bl ON e.bank_ledger_id = bl.bank_ledger_id
		WHERE e.bank_ledger_id = $1
		  AND e.chart_account_id = bl.chart_account_id
		  AND e.reconciled = FALSE
	`
	args := []interface{}{bankLedgerID}
	if from != nil {
		args = append(args, *from)
		query += " AND e.transaction_date >= $" + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += " AND e.transaction_date <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY e.transaction_date, e.created_at;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query unreconciled cash legs for bank ledger %s: %w", bankLedgerID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// CountCashLegsInPeriod returns reconciled and unreconciled cash-leg counts
// for a bank ledger within a period.
func (r *PgxLedgerRepository) CountCashLegsInPeriod(ctx context.Context, bankLedgerID string, from, to time.Time) (int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE e.reconciled),
			COUNT(*) FILTER (WHERE NOT e.reconciled)
		FROM ledger_entries e
		JOIN bank_ledgers bl ON e.bank_ledger_id = bl.bank_ledger_id
		WHERE e.bank_ledger_id = $1
		  AND e.chart_account_id = bl.chart_account_id
		  AND e.transaction_date BETWEEN $2 AND $3;
	`
	var reconciled, unreconciled int
	if err := r.Pool.QueryRow(ctx, query, bankLedgerID, from, to).Scan(&reconciled, &unreconciled); err != nil {
		return 0, 0, fmt.Errorf("failed to count cash legs for bank ledger %s: %w", bankLedgerID, err)
	}
	return reconciled, unreconciled, nil
}
