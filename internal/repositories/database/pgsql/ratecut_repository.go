package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/bullion_books_app/internal/models"
	"github.com/SscSPs/bullion_books_app/internal/platform/cache"
	"github.com/SscSPs/bullion_books_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxRateCutRepository struct {
	BaseRepository
	readCache *cache.ReadCache
}

// newPgxRateCutRepository creates the repository for rate cuts and their
// per-denomination lock dates.
func newPgxRateCutRepository(pool DBPool, readCache *cache.ReadCache) portsrepo.RateCutRepositoryFacade {
	return &PgxRateCutRepository{
		BaseRepository: BaseRepository{Pool: pool},
		readCache:      readCache,
	}
}

var _ portsrepo.RateCutRepositoryFacade = (*PgxRateCutRepository)(nil)

// ApplyRateCut moves weight out of the metal balance and money into the money
// balance, appends the audit row and advances the lock date, atomically.
func (r *PgxRateCutRepository) ApplyRateCut(ctx context.Context, cut domain.RateCut) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockCustomer(ctx, tx, cut.CustomerID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO rate_cuts (cut_id, customer_id, denomination, weight, rate, money_credit, cut_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		cut.CutID, cut.CustomerID, string(cut.Denomination),
		cut.Weight, cut.Rate, cut.MoneyCredit, cut.CutDate, cut.CreatedAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert rate cut "+cut.CutID, err)
	}

	if err := r.applyBalanceShift(ctx, tx, cut, false); err != nil {
		return err
	}

	lockQuery := `
		INSERT INTO rate_cut_locks (customer_id, denomination, lock_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, denomination)
		DO UPDATE SET lock_date = GREATEST(rate_cut_locks.lock_date, EXCLUDED.lock_date);
	`
	if _, err := tx.Exec(ctx, lockQuery, cut.CustomerID, string(cut.Denomination), cut.CutDate); err != nil {
		return apperrors.NewAppError(500, "failed to advance rate cut lock date", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	r.readCache.EvictCustomer(cut.CustomerID)
	return nil
}

func (r *PgxRateCutRepository) lockCustomer(ctx context.Context, tx pgx.Tx, customerID string) error {
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

// applyBalanceShift moves the cut between the metal and money balances.
// reverse=true undoes a previous cut.
func (r *PgxRateCutRepository) applyBalanceShift(ctx context.Context, tx pgx.Tx, cut domain.RateCut, reverse bool) error {
	weight := cut.Weight.Neg()
	credit := cut.MoneyCredit
	if reverse {
		weight = cut.Weight
		credit = cut.MoneyCredit.Neg()
	}

	metalQuery := `
		INSERT INTO customer_metal_balances (customer_id, denomination, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, denomination)
		DO UPDATE SET balance = customer_metal_balances.balance + EXCLUDED.balance;
	`
	if _, err := tx.Exec(ctx, metalQuery, cut.CustomerID, string(cut.Denomination), weight); err != nil {
		return apperrors.NewAppError(500, "failed to shift "+string(cut.Denomination)+" balance for customer "+cut.CustomerID, err)
	}

	moneyQuery := `
		UPDATE customers
		SET balance = balance + $2,
		    last_updated_at = $3
		WHERE customer_id = $1;
	`
	if _, err := tx.Exec(ctx, moneyQuery, cut.CustomerID, credit, time.Now().UTC()); err != nil {
		return apperrors.NewAppError(500, "failed to shift money balance for customer "+cut.CustomerID, err)
	}
	return nil
}

// DeleteLatestRateCut reverses the most recent cut for the customer and
// denomination, recomputes the lock date from the remaining rows, and returns
// the reversed row.
func (r *PgxRateCutRepository) DeleteLatestRateCut(ctx context.Context, customerID string, denomination domain.Denomination) (*domain.RateCut, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockCustomer(ctx, tx, customerID); err != nil {
		return nil, err
	}

	var m models.RateCut
	err = tx.QueryRow(ctx, `
		SELECT cut_id, customer_id, denomination, weight, rate, money_credit, cut_date, created_at
		FROM rate_cuts
		WHERE customer_id = $1 AND denomination = $2
		ORDER BY created_at DESC, cut_id DESC
		LIMIT 1
		FOR UPDATE;
	`, customerID, string(denomination)).Scan(
		&m.CutID, &m.CustomerID, &m.Denomination, &m.Weight, &m.Rate, &m.MoneyCredit, &m.CutDate, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate cut to delete for customer " + customerID)
		}
		return nil, apperrors.NewAppError(500, "failed to select latest rate cut", err)
	}

	cut := mapping.ToDomainRateCut(m)

	if _, err := tx.Exec(ctx, `DELETE FROM rate_cuts WHERE cut_id = $1;`, cut.CutID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete rate cut "+cut.CutID, err)
	}

	if err := r.applyBalanceShift(ctx, tx, cut, true); err != nil {
		return nil, err
	}

	// Recompute the lock date from the surviving rows; zero it when none remain.
	lockQuery := `
		INSERT INTO rate_cut_locks (customer_id, denomination, lock_date)
		VALUES ($1, $2, COALESCE(
			(SELECT MAX(cut_date) FROM rate_cuts WHERE customer_id = $1 AND denomination = $2),
			'epoch'::timestamptz))
		ON CONFLICT (customer_id, denomination)
		DO UPDATE SET lock_date = EXCLUDED.lock_date;
	`
	if _, err := tx.Exec(ctx, lockQuery, customerID, string(denomination)); err != nil {
		return nil, apperrors.NewAppError(500, "failed to recompute rate cut lock date", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	r.readCache.EvictCustomer(customerID)
	return &cut, nil
}

// ListRateCuts retrieves a customer's rate cut history, newest first.
func (r *PgxRateCutRepository) ListRateCuts(ctx context.Context, customerID string) ([]domain.RateCut, error) {
	query := `
		SELECT cut_id, customer_id, denomination, weight, rate, money_credit, cut_date, created_at
		FROM rate_cuts
		WHERE customer_id = $1
		ORDER BY created_at DESC, cut_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rate cuts for customer "+customerID, err)
	}
	defer rows.Close()

	cuts := []domain.RateCut{}
	for rows.Next() {
		var m models.RateCut
		if err := rows.Scan(&m.CutID, &m.CustomerID, &m.Denomination, &m.Weight, &m.Rate, &m.MoneyCredit, &m.CutDate, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rate cut row", err)
		}
		cuts = append(cuts, mapping.ToDomainRateCut(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating rate cut rows", err)
	}
	return cuts, nil
}

// GetLockDates retrieves the customer's current lock date per denomination.
func (r *PgxRateCutRepository) GetLockDates(ctx context.Context, customerID string) (map[domain.Denomination]time.Time, error) {
	query := `
		SELECT denomination, lock_date
		FROM rate_cut_locks
		WHERE customer_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rate cut locks for customer "+customerID, err)
	}
	defer rows.Close()

	locks := map[domain.Denomination]time.Time{}
	for rows.Next() {
		var denomination string
		var lockDate time.Time
		if err := rows.Scan(&denomination, &lockDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rate cut lock row", err)
		}
		locks[domain.Denomination(denomination)] = lockDate
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating rate cut lock rows", err)
	}
	return locks, nil
}
