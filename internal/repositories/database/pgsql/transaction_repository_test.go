package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/SscSPs/bullion_books_app/internal/platform/cache"
	"github.com/SscSPs/bullion_books_app/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedTransactionRepo(t *testing.T) (pgxmock.PgxPoolIface, *PgxTransactionRepository) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	repo := &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: mockPool},
		readCache:      cache.New(16, time.Minute),
	}
	return mockPool, repo
}

func raniSellTransaction(now time.Time) *domain.Transaction {
	touch := decimal.RequireFromString("85")
	return &domain.Transaction{
		TransactionID: utils.NewID(utils.PrefixTransaction),
		CustomerID:    "cust_1",
		Date:          now,
		Entries: []domain.TransactionEntry{{
			Kind:       domain.EntrySell,
			ItemType:   domain.Rani,
			Weight:     decimal.RequireFromString("5"),
			Touch:      &touch,
			PureWeight: decimal.RequireFromString("4.25"),
			MetalOnly:  true,
			Subtotal:   decimal.Zero,
		}},
		Total:          decimal.Zero,
		SettlementType: domain.SettlementFull,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

const (
	lockCustomerSQL = `SELECT customer_id FROM customers WHERE customer_id = \$1 FOR UPDATE`
	oldestLotSQL    = `SELECT stock_id, denomination, weight, touch, created_at FROM stock_lots WHERE denomination = \$1 ORDER BY created_at ASC, stock_id ASC LIMIT 1 FOR UPDATE`
	deleteLotSQL    = `DELETE FROM stock_lots WHERE stock_id = \$1`
)

// A sale of a stock-tracked denomination must always take the lot with the
// oldest creation time, and the lot it deletes must be the one the ordered
// select returned.
func TestSaveTransaction_ConsumesOldestLotFirst(t *testing.T) {
	mockPool, repo := newMockedTransactionRepo(t)

	now := time.Now().UTC()
	oldestCreatedAt := now.Add(-48 * time.Hour)
	txn := raniSellTransaction(now)
	effects := domain.TransactionEffects{
		MoneyDelta:  decimal.Zero,
		MetalDeltas: map[domain.Denomination]decimal.Decimal{domain.Rani: decimal.RequireFromString("-4.25")},
		Stock: []domain.StockEffect{{
			Kind:         domain.StockConsumeFIFO,
			EntryIndex:   0,
			Denomination: domain.Rani,
		}},
		TouchedAt: now,
	}

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(lockCustomerSQL).
		WithArgs("cust_1").
		WillReturnRows(pgxmock.NewRows([]string{"customer_id"}).AddRow("cust_1"))
	mockPool.ExpectQuery(oldestLotSQL).
		WithArgs("rani").
		WillReturnRows(pgxmock.NewRows([]string{"stock_id", "denomination", "weight", "touch", "created_at"}).
			AddRow("stk_oldest", "rani", decimal.RequireFromString("5"), decimal.RequireFromString("85"), oldestCreatedAt))
	mockPool.ExpectExec(deleteLotSQL).
		WithArgs("stk_oldest").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectExec(`INSERT INTO transactions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec(`UPDATE customers SET balance = balance`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(`INSERT INTO customer_metal_balances`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	err := repo.SaveTransaction(context.Background(), txn, effects)

	require.NoError(t, err)
	require.NotNil(t, txn.Entries[0].StockID)
	assert.Equal(t, "stk_oldest", *txn.Entries[0].StockID)
	require.NotNil(t, txn.Entries[0].StockCreatedAt)
	assert.True(t, txn.Entries[0].StockCreatedAt.Equal(oldestCreatedAt))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

// Editing a purchase into a sale first removes the lot the purchase created,
// then consumes from what is left. When nothing is left the whole unit must
// roll back, so the removed lot survives untouched.
func TestUpdateTransaction_InsufficientStockRollsBackLotRemoval(t *testing.T) {
	mockPool, repo := newMockedTransactionRepo(t)

	now := time.Now().UTC()
	txn := raniSellTransaction(now)
	txn.Entries[0].ItemType = domain.Rupu
	effects := domain.TransactionEffects{
		MoneyDelta:  decimal.Zero,
		MetalDeltas: map[domain.Denomination]decimal.Decimal{},
		Stock: []domain.StockEffect{
			{Kind: domain.StockRemove, StockID: "stk_purchase"},
			{Kind: domain.StockConsumeFIFO, EntryIndex: 0, Denomination: domain.Rupu},
		},
		TouchedAt: now,
	}

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(lockCustomerSQL).
		WithArgs("cust_1").
		WillReturnRows(pgxmock.NewRows([]string{"customer_id"}).AddRow("cust_1"))
	mockPool.ExpectExec(deleteLotSQL).
		WithArgs("stk_purchase").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectQuery(oldestLotSQL).
		WithArgs("rupu").
		WillReturnError(pgx.ErrNoRows)
	mockPool.ExpectRollback()

	err := repo.UpdateTransaction(context.Background(), txn, effects)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStock))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

// Reversing a transaction whose lot has already vanished must fail the unit
// instead of silently skipping the restore's counterpart.
func TestDeleteTransaction_MissingLotFailsTheUnit(t *testing.T) {
	mockPool, repo := newMockedTransactionRepo(t)

	now := time.Now().UTC()
	txn := raniSellTransaction(now)
	effects := domain.TransactionEffects{
		MoneyDelta:   decimal.Zero,
		MetalDeltas:  map[domain.Denomination]decimal.Decimal{},
		Stock:        []domain.StockEffect{{Kind: domain.StockRemove, StockID: "stk_gone"}},
		RemoveLedger: true,
		TouchedAt:    now,
	}

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(lockCustomerSQL).
		WithArgs("cust_1").
		WillReturnRows(pgxmock.NewRows([]string{"customer_id"}).AddRow("cust_1"))
	mockPool.ExpectExec(deleteLotSQL).
		WithArgs("stk_gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockPool.ExpectRollback()

	err := repo.DeleteTransaction(context.Background(), txn, effects)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInconsistentState))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
