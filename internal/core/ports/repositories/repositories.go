// Package repositories defines the persistence ports of the core. Every write
// method named on these interfaces is one atomic unit: either all of its
// effects commit, or none do.
package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/core/domain"
)

// CustomerRepositoryFacade persists customers and their balances.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	// SumBalances aggregates every customer's money and metal balances.
	SumBalances(ctx context.Context) (domain.BalanceSums, error)
}

// TransactionRepositoryFacade persists transactions and applies their
// precomputed effects (balances, stock lots, ledger rows) in one unit.
// Save and Update resolve FIFO stock consumption inside the unit and record
// the chosen lot ids back onto the transaction's entries.
type TransactionRepositoryFacade interface {
	SaveTransaction(ctx context.Context, txn *domain.Transaction, effects domain.TransactionEffects) error
	UpdateTransaction(ctx context.Context, txn *domain.Transaction, effects domain.TransactionEffects) error
	DeleteTransaction(ctx context.Context, txn *domain.Transaction, effects domain.TransactionEffects) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactionsByCustomer(ctx context.Context, customerID string) ([]domain.Transaction, error)
	ListAllTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// StockRepositoryFacade is the read/standalone-write surface of the stock
// sub-ledger. Transaction-driven lot changes go through the transaction
// repository's atomic units instead.
type StockRepositoryFacade interface {
	AddLot(ctx context.Context, lot domain.StockLot) error
	ListLotsByType(ctx context.Context, denomination domain.Denomination) ([]domain.StockLot, error)
	FindLotByID(ctx context.Context, stockID string) (*domain.StockLot, error)
}

// LedgerRepositoryFacade reads the append-only money ledger. Appends and
// removals happen only inside transaction repository units.
type LedgerRepositoryFacade interface {
	ListLedgerByCustomer(ctx context.Context, customerID string) ([]domain.LedgerEntry, error)
	ListLedgerByTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)
}

// InventoryRepositoryFacade persists the adjusted base inventory figure.
type InventoryRepositoryFacade interface {
	GetBaseInventory(ctx context.Context) (*domain.BaseInventory, error)
	SetBaseInventory(ctx context.Context, base domain.BaseInventory) error
}

// RateCutRepositoryFacade persists rate cuts. ApplyRateCut and
// DeleteLatestRateCut each run the full effect set (metal balance, money
// balance, audit row, lock date) in one unit; DeleteLatestRateCut returns the
// reversed row.
type RateCutRepositoryFacade interface {
	ApplyRateCut(ctx context.Context, cut domain.RateCut) error
	DeleteLatestRateCut(ctx context.Context, customerID string, denomination domain.Denomination) (*domain.RateCut, error)
	ListRateCuts(ctx context.Context, customerID string) ([]domain.RateCut, error)
	GetLockDates(ctx context.Context, customerID string) (map[domain.Denomination]time.Time, error)
}

// MerchantRepositoryFacade looks up the login identity.
type MerchantRepositoryFacade interface {
	FindMerchantByUsername(ctx context.Context, username string) (*domain.Merchant, error)
}

// RepositoryProvider bundles every repository facade for service wiring.
type RepositoryProvider struct {
	CustomerRepo    CustomerRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	StockRepo       StockRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	InventoryRepo   InventoryRepositoryFacade
	RateCutRepo     RateCutRepositoryFacade
	MerchantRepo    MerchantRepositoryFacade
}
