package services

import (
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.CustomerRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo, repos.LedgerRepo)
	container.Stock = NewStockService(repos.StockRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.CustomerRepo, repos.TransactionRepo)
	container.RateCut = NewRateCutService(repos.RateCutRepo, repos.CustomerRepo)
	container.Auth = NewAuthService(cfg, repos.MerchantRepo)

	return container
}
