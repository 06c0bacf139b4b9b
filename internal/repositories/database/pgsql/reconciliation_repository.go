package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	"github.com/propfolio/property_ledger/internal/models"
	"github.com/propfolio/property_ledger/internal/utils/mapping"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReconciliationRepository implements portsrepo.ReconciliationRepositoryFacade
var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

const reconciliationColumns = `reconciliation_id, bank_ledger_id, statement_id, reconciliation_date, status, created_at, created_by, last_updated_at, last_updated_by`

// SaveReconciliation inserts the reconciliation and its matches and marks
// every matched ledger entry reconciled, all in one DB transaction.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, reconciliation domain.BankReconciliation, matches []domain.ReconciliationMatch) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	reconQuery := `
		INSERT INTO bank_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, reconQuery,
		reconciliation.ReconciliationID,
		reconciliation.BankLedgerID,
		reconciliation.StatementID,
		reconciliation.ReconciliationDate,
		string(reconciliation.Status),
		reconciliation.CreatedAt,
		reconciliation.CreatedBy,
		reconciliation.LastUpdatedAt,
		reconciliation.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert reconciliation "+reconciliation.ReconciliationID, err)
	}

	batch := &pgx.Batch{}
	matchQuery := `
		INSERT INTO reconciliation_matches (match_id, reconciliation_id, ledger_entry_id, bank_transaction_id, match_notes)
		VALUES ($1, $2, $3, $4, $5);
	`
	entryIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		batch.Queue(matchQuery, m.MatchID, m.ReconciliationID, m.LedgerEntryID, m.BankTransactionID, m.MatchNotes)
		entryIDs = append(entryIDs, m.LedgerEntryID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute reconciliation match batch", err)
	}

	markQuery := `
		UPDATE ledger_entries
		SET reconciled = TRUE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE entry_id = ANY($1) AND reconciled = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, markQuery, entryIDs, reconciliation.CreatedAt, reconciliation.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entries reconciled", err)
	}
	if int(cmdTag.RowsAffected()) != len(entryIDs) {
		// One of the entries was reconciled concurrently; abort the whole set
		return fmt.Errorf("%w: %d of %d entries could not be marked reconciled", apperrors.ErrConflict, len(entryIDs)-int(cmdTag.RowsAffected()), len(entryIDs))
	}

	return r.Commit(ctx, tx)
}

// UpdateReconciliationStatus moves a reconciliation to the given status.
func (r *PgxReconciliationRepository) UpdateReconciliationStatus(ctx context.Context, reconciliationID string, status domain.ReconciliationStatus, updatedBy string) error {
	query := `
		UPDATE bank_reconciliations
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE reconciliation_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, reconciliationID, string(status), time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update reconciliation %s status: %w", reconciliationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReconciliationRepository) scanReconciliation(row pgx.Row) (*models.BankReconciliation, error) {
	var m models.BankReconciliation
	err := row.Scan(
		&m.ReconciliationID,
		&m.BankLedgerID,
		&m.StatementID,
		&m.ReconciliationDate,
		&m.Status,
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

// findMatches loads the matches belonging to a reconciliation.
func (r *PgxReconciliationRepository) findMatches(ctx context.Context, reconciliationID string) ([]domain.ReconciliationMatch, error) {
	query := `
		SELECT match_id, reconciliation_id, ledger_entry_id, bank_transaction_id, match_notes
		FROM reconciliation_matches
		WHERE reconciliation_id = $1
		ORDER BY match_id;
	`
	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for reconciliation %s: %w", reconciliationID, err)
	}
	defer rows.Close()

	matches := []domain.ReconciliationMatch{}
	for rows.Next() {
		var m models.ReconciliationMatch
		if err := rows.Scan(&m.MatchID, &m.ReconciliationID, &m.LedgerEntryID, &m.BankTransactionID, &m.MatchNotes); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, mapping.ToDomainReconciliationMatch(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}

	return matches, nil
}

// FindReconciliationByID retrieves a reconciliation with its matches.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM bank_reconciliations WHERE reconciliation_id = $1;`

	m, err := r.scanReconciliation(r.Pool.QueryRow(ctx, query, reconciliationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}

	recon := mapping.ToDomainReconciliation(*m)
	recon.Matches, err = r.findMatches(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}
	return &recon, nil
}

// FindReconciliationByStatement retrieves the reconciliation recorded against
// a statement.
func (r *PgxReconciliationRepository) FindReconciliationByStatement(ctx context.Context, statementID string) (*domain.BankReconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE statement_id = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := r.scanReconciliation(r.Pool.QueryRow(ctx, query, statementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reconciliation for statement %s: %w", statementID, err)
	}

	recon := mapping.ToDomainReconciliation(*m)
	recon.Matches, err = r.findMatches(ctx, recon.ReconciliationID)
	if err != nil {
		return nil, err
	}
	return &recon, nil
}
