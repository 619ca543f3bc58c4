package pgsql

import (
	"context"
	"encoding/json"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/bullion_books_app/internal/models"
	"github.com/SscSPs/bullion_books_app/internal/utils/mapping"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the read surface of the money ledger.
// Appends and removals happen inside transaction repository units.
func newPgxLedgerRepository(pool DBPool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const selectLedgerColumns = `
	SELECT ledger_id, transaction_id, customer_id, date, amount_received, amount_given, entries, created_at
	FROM ledger_entries`

func (r *PgxLedgerRepository) listLedger(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	out := []domain.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		var entriesJSON []byte
		if err := rows.Scan(
			&m.LedgerID,
			&m.TransactionID,
			&m.CustomerID,
			&m.Date,
			&m.AmountReceived,
			&m.AmountGiven,
			&entriesJSON,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		if err := json.Unmarshal(entriesJSON, &m.Entries); err != nil {
			return nil, apperrors.NewAppError(500, "failed to unmarshal ledger entries for "+m.LedgerID, err)
		}
		out = append(out, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return out, nil
}

// ListLedgerByCustomer retrieves a customer's money movement history, newest first.
func (r *PgxLedgerRepository) ListLedgerByCustomer(ctx context.Context, customerID string) ([]domain.LedgerEntry, error) {
	query := selectLedgerColumns + ` WHERE customer_id = $1 ORDER BY created_at DESC;`
	return r.listLedger(ctx, query, customerID)
}

// ListLedgerByTransaction retrieves the rows a transaction has emitted, oldest first.
func (r *PgxLedgerRepository) ListLedgerByTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	query := selectLedgerColumns + ` WHERE transaction_id = $1 ORDER BY created_at ASC;`
	return r.listLedger(ctx, query, transactionID)
}
