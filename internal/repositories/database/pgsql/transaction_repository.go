package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/bullion_books_app/internal/models"
	"github.com/SscSPs/bullion_books_app/internal/platform/cache"
	"github.com/SscSPs/bullion_books_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxTransactionRepository struct {
	BaseRepository
	readCache *cache.ReadCache
}

// newPgxTransactionRepository creates the repository that applies transaction
// effect sets atomically.
func newPgxTransactionRepository(pool DBPool, readCache *cache.ReadCache) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		readCache:      readCache,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// lockCustomer takes a row lock on the customer for the duration of the unit,
// so the effect set applies against a stable balance snapshot.
func (r *PgxTransactionRepository) lockCustomer(ctx context.Context, tx pgx.Tx, customerID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT customer_id FROM customers WHERE customer_id = $1 FOR UPDATE;`, customerID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("customer " + customerID + " not found")
		}
		return apperrors.NewAppError(500, "failed to lock customer "+customerID, err)
	}
	return nil
}

// applyStockEffects runs the stock sub-ledger operations in order. FIFO
// consumption is resolved here, inside the unit, so the chosen lot is
// guaranteed to still exist when it is deleted; the resolved lot id and
// creation time are written back onto the transaction's entries.
func (r *PgxTransactionRepository) applyStockEffects(ctx context.Context, tx pgx.Tx, txn *domain.Transaction, effects []domain.StockEffect) error {
	insertQuery := `
		INSERT INTO stock_lots (stock_id, denomination, weight, touch, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, effect := range effects {
		switch effect.Kind {
		case domain.StockCreate, domain.StockRestore:
			lot := effect.Lot
			if _, err := tx.Exec(ctx, insertQuery, lot.StockID, string(lot.Denomination), lot.Weight, lot.Touch, lot.CreatedAt); err != nil {
				return apperrors.NewAppError(500, "failed to insert stock lot "+lot.StockID, err)
			}
			if effect.Kind == domain.StockCreate && effect.EntryIndex < len(txn.Entries) {
				id := lot.StockID
				createdAt := lot.CreatedAt
				txn.Entries[effect.EntryIndex].StockID = &id
				txn.Entries[effect.EntryIndex].StockCreatedAt = &createdAt
			}

		case domain.StockRemove:
			tag, err := tx.Exec(ctx, `DELETE FROM stock_lots WHERE stock_id = $1;`, effect.StockID)
			if err != nil {
				return apperrors.NewAppError(500, "failed to remove stock lot "+effect.StockID, err)
			}
			if tag.RowsAffected() == 0 {
				return apperrors.NewAppError(500, "stock lot "+effect.StockID+" missing during reversal", apperrors.ErrInconsistentState)
			}

		case domain.StockConsumeFIFO:
			var lot models.StockLot
			err := tx.QueryRow(ctx, `
				SELECT stock_id, denomination, weight, touch, created_at
				FROM stock_lots
				WHERE denomination = $1
				ORDER BY created_at ASC, stock_id ASC
				LIMIT 1
				FOR UPDATE;
			`, string(effect.Denomination)).Scan(&lot.StockID, &lot.Denomination, &lot.Weight, &lot.Touch, &lot.CreatedAt)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.NewAppError(409, "no "+string(effect.Denomination)+" lot on hand", apperrors.ErrInsufficientStock)
				}
				return apperrors.NewAppError(500, "failed to select oldest "+string(effect.Denomination)+" lot", err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM stock_lots WHERE stock_id = $1;`, lot.StockID); err != nil {
				return apperrors.NewAppError(500, "failed to consume stock lot "+lot.StockID, err)
			}
			if effect.EntryIndex < len(txn.Entries) {
				id := lot.StockID
				createdAt := lot.CreatedAt
				txn.Entries[effect.EntryIndex].StockID = &id
				txn.Entries[effect.EntryIndex].StockCreatedAt = &createdAt
			}

		default:
			return apperrors.NewAppError(500, "unknown stock effect kind "+string(effect.Kind), nil)
		}
	}
	return nil
}

// applyBalances folds the money and metal deltas into the locked customer row.
func (r *PgxTransactionRepository) applyBalances(ctx context.Context, tx pgx.Tx, customerID string, effects domain.TransactionEffects) error {
	query := `
		UPDATE customers
		SET balance = balance + $2,
		    last_transaction_at = $3,
		    last_updated_at = $3
		WHERE customer_id = $1;
	`
	if _, err := tx.Exec(ctx, query, customerID, effects.MoneyDelta, effects.TouchedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update balance for customer "+customerID, err)
	}

	metalQuery := `
		INSERT INTO customer_metal_balances (customer_id, denomination, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, denomination)
		DO UPDATE SET balance = customer_metal_balances.balance + EXCLUDED.balance;
	`
	for _, d := range domain.Denominations {
		delta, ok := effects.MetalDeltas[d]
		if !ok || delta.IsZero() {
			continue
		}
		if _, err := tx.Exec(ctx, metalQuery, customerID, string(d), delta); err != nil {
			return apperrors.NewAppError(500, "failed to update "+string(d)+" balance for customer "+customerID, err)
		}
	}
	return nil
}

// appendLedger inserts the unit's ledger rows. Entries are marshalled after
// stock resolution so the snapshots carry the resolved lot ids.
func (r *PgxTransactionRepository) appendLedger(ctx context.Context, tx pgx.Tx, rows []domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (ledger_id, transaction_id, customer_id, date, amount_received, amount_given, entries, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, row := range rows {
		entriesJSON, err := json.Marshal(mapping.ToModelEntrySlice(row.Entries))
		if err != nil {
			return apperrors.NewAppError(500, "failed to marshal ledger entries for "+row.LedgerID, err)
		}
		if _, err := tx.Exec(ctx, query,
			row.LedgerID,
			row.TransactionID,
			row.CustomerID,
			row.Date,
			row.AmountReceived,
			row.AmountGiven,
			entriesJSON,
			row.CreatedAt,
		); err != nil {
			return apperrors.NewAppError(500, "failed to insert ledger entry "+row.LedgerID, err)
		}
	}
	return nil
}

// SaveTransaction persists a new transaction and applies its effect set as
// one atomic unit.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction, effects domain.TransactionEffects) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockCustomer(ctx, tx, txn.CustomerID); err != nil {
		return err
	}
	if err := r.applyStockEffects(ctx, tx, txn, effects.Stock); err != nil {
		return err
	}

	entriesJSON, err := json.Marshal(mapping.ToModelEntrySlice(txn.Entries))
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal entries for transaction "+txn.TransactionID, err)
	}
	query := `
		INSERT INTO transactions (
			transaction_id, customer_id, date, entries, total, amount_paid,
			discount_extra_amount, settlement_type, last_given_money,
			last_to_last_given_money, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	if _, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.CustomerID,
		txn.Date,
		entriesJSON,
		txn.Total,
		txn.AmountPaid,
		txn.DiscountExtraAmount,
		string(txn.SettlementType),
		txn.LastGivenMoney,
		txn.LastToLastGivenMoney,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}

	if err := r.appendLedger(ctx, tx, effects.Ledger); err != nil {
		return err
	}
	if err := r.applyBalances(ctx, tx, txn.CustomerID, effects); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	r.readCache.EvictCustomer(txn.CustomerID)
	r.readCache.EvictTransaction(txn.TransactionID)
	return nil
}

// UpdateTransaction rewrites a transaction row and applies the combined
// reversal-plus-forward effect set as one atomic unit.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn *domain.Transaction, effects domain.TransactionEffects) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockCustomer(ctx, tx, txn.CustomerID); err != nil {
		return err
	}
	if err := r.applyStockEffects(ctx, tx, txn, effects.Stock); err != nil {
		return err
	}

	entriesJSON, err := json.Marshal(mapping.ToModelEntrySlice(txn.Entries))
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal entries for transaction "+txn.TransactionID, err)
	}
	query := `
		UPDATE transactions
		SET date = $2,
		    entries = $3,
		    total = $4,
		    amount_paid = $5,
		    discount_extra_amount = $6,
		    settlement_type = $7,
		    last_given_money = $8,
		    last_to_last_given_money = $9,
		    last_updated_at = $10
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.Date,
		entriesJSON,
		txn.Total,
		txn.AmountPaid,
		txn.DiscountExtraAmount,
		string(txn.SettlementType),
		txn.LastGivenMoney,
		txn.LastToLastGivenMoney,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + txn.TransactionID + " not found for update")
	}

	if err := r.appendLedger(ctx, tx, effects.Ledger); err != nil {
		return err
	}
	if err := r.applyBalances(ctx, tx, txn.CustomerID, effects); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	r.readCache.EvictCustomer(txn.CustomerID)
	r.readCache.EvictTransaction(txn.TransactionID)
	return nil
}

// DeleteTransaction applies the reversal effect set, removes the ledger rows
// and the row itself, as one atomic unit.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn *domain.Transaction, effects domain.TransactionEffects) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockCustomer(ctx, tx, txn.CustomerID); err != nil {
		return err
	}
	if err := r.applyStockEffects(ctx, tx, txn, effects.Stock); err != nil {
		return err
	}

	if effects.RemoveLedger {
		if _, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
			return apperrors.NewAppError(500, "failed to remove ledger entries for transaction "+txn.TransactionID, err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + txn.TransactionID + " not found for delete")
	}

	if err := r.applyBalances(ctx, tx, txn.CustomerID, effects); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	r.readCache.EvictCustomer(txn.CustomerID)
	r.readCache.EvictTransaction(txn.TransactionID)
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if cached, ok := r.readCache.GetTransaction(transactionID); ok {
		return &cached, nil
	}

	query := selectTransactionColumns + ` WHERE transaction_id = $1;`
	row := r.Pool.QueryRow(ctx, query, transactionID)
	m, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	r.readCache.SetTransaction(txn)
	return &txn, nil
}

const selectTransactionColumns = `
	SELECT transaction_id, customer_id, date, entries, total, amount_paid,
	       discount_extra_amount, settlement_type, last_given_money,
	       last_to_last_given_money, created_at, last_updated_at
	FROM transactions`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	var entriesJSON []byte
	err := row.Scan(
		&m.TransactionID,
		&m.CustomerID,
		&m.Date,
		&entriesJSON,
		&m.Total,
		&m.AmountPaid,
		&m.DiscountExtraAmount,
		&m.SettlementType,
		&m.LastGivenMoney,
		&m.LastToLastGivenMoney,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := json.Unmarshal(entriesJSON, &m.Entries); err != nil {
		return models.Transaction{}, err
	}
	return m, nil
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	out := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		out = append(out, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return out, nil
}

// ListTransactionsByCustomer retrieves a customer's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByCustomer(ctx context.Context, customerID string) ([]domain.Transaction, error) {
	query := selectTransactionColumns + ` WHERE customer_id = $1 ORDER BY date DESC, created_at DESC;`
	return r.listTransactions(ctx, query, customerID)
}

// ListAllTransactions retrieves every transaction. Used by inventory
// reconstruction, which folds the running effect of the whole book.
func (r *PgxTransactionRepository) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := selectTransactionColumns + ` ORDER BY date ASC, created_at ASC;`
	return r.listTransactions(ctx, query)
}
