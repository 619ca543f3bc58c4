package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/SscSPs/bullion_books_app/internal/utils"
	"github.com/shopspring/decimal"
)

// customerService manages customers and their balance snapshots. Balances are
// never written here; only the transaction engine and the rate-cut feature
// mutate them.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer creates a customer with zero balances.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:    utils.NewID(utils.PrefixCustomer),
		Name:          req.Name,
		Balance:       decimal.Zero,
		MetalBalances: domain.ZeroMetals(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to create customer", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// GetCustomerByID retrieves a customer.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

// ListCustomers retrieves every customer.
func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx)
}

// GetCustomerBalance returns the customer's open position.
func (s *customerService) GetCustomerBalance(ctx context.Context, customerID string) (*dto.BalanceSnapshot, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	snapshot := dto.ToBalanceSnapshot(customer)
	return &snapshot, nil
}

// GetCustomerLedger returns the customer's money-movement history, newest first.
func (s *customerService) GetCustomerLedger(ctx context.Context, customerID string) ([]domain.LedgerEntry, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListLedgerByCustomer(ctx, customerID)
}
