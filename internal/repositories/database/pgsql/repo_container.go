package pgsql

import (
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/bullion_books_app/internal/platform/cache"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository against the pool and the
// shared read cache.
func NewRepositoryProvider(dbPool *pgxpool.Pool, readCache *cache.ReadCache) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:    newPgxCustomerRepository(dbPool, readCache),
		TransactionRepo: newPgxTransactionRepository(dbPool, readCache),
		StockRepo:       newPgxStockRepository(dbPool),
		LedgerRepo:      newPgxLedgerRepository(dbPool),
		InventoryRepo:   newPgxInventoryRepository(dbPool),
		RateCutRepo:     newPgxRateCutRepository(dbPool, readCache),
		MerchantRepo:    newPgxMerchantRepository(dbPool),
	}
}
