// Package services defines the service ports consumed by the HTTP handlers.
package services

import (
	"context"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/SscSPs/bullion_books_app/internal/dto"
)

// TransactionSvcFacade is the transaction engine surface.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactionsByCustomer(ctx context.Context, customerID string) ([]domain.Transaction, error)
}

// CustomerSvcFacade manages customers and balance snapshots.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomerBalance(ctx context.Context, customerID string) (*dto.BalanceSnapshot, error)
	GetCustomerLedger(ctx context.Context, customerID string) ([]domain.LedgerEntry, error)
}

// StockSvcFacade is the stock sub-ledger surface.
type StockSvcFacade interface {
	AddLot(ctx context.Context, req dto.AddStockLotRequest) (*domain.StockLot, error)
	ListLotsByType(ctx context.Context, denomination domain.Denomination) ([]domain.StockLot, error)
}

// InventorySvcFacade reconstructs current inventory and maintains the base figure.
type InventorySvcFacade interface {
	Reconstruct(ctx context.Context) (*domain.InventorySnapshot, error)
	SetBaseInventory(ctx context.Context, req dto.SetBaseInventoryRequest) (*domain.BaseInventory, error)
}

// RateCutSvcFacade is the rate-adjustment satellite surface.
type RateCutSvcFacade interface {
	ApplyRateCut(ctx context.Context, customerID string, req dto.ApplyRateCutRequest) (*domain.RateCut, error)
	DeleteLatestRateCut(ctx context.Context, customerID string, denomination domain.Denomination) error
	ListRateCuts(ctx context.Context, customerID string) ([]domain.RateCut, map[domain.Denomination]time.Time, error)
}

// AuthSvcFacade authenticates the merchant and issues tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, username, password string) (string, *domain.Merchant, error)
}

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Customer    CustomerSvcFacade
	Stock       StockSvcFacade
	Inventory   InventorySvcFacade
	RateCut     RateCutSvcFacade
	Auth        AuthSvcFacade
}
