package dto

import (
	"time"

	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest creates a customer explicitly (customers are also
// implicitly created on their first transaction).
type CreateCustomerRequest struct {
	Name string `json:"name" binding:"required"`
}

// BalanceSnapshot is the API view of a customer's open position.
type BalanceSnapshot struct {
	CustomerID        string                                  `json:"customerID"`
	Name              string                                  `json:"name"`
	Balance           decimal.Decimal                         `json:"balance"`
	MetalBalances     map[domain.Denomination]decimal.Decimal `json:"metalBalances"`
	LastTransactionAt *time.Time                              `json:"lastTransactionAt,omitempty"`
}

// CustomerResponse is the API shape of a customer.
type CustomerResponse struct {
	CustomerID        string                                  `json:"customerID"`
	Name              string                                  `json:"name"`
	Balance           decimal.Decimal                         `json:"balance"`
	MetalBalances     map[domain.Denomination]decimal.Decimal `json:"metalBalances"`
	LastTransactionAt *time.Time                              `json:"lastTransactionAt,omitempty"`
	CreatedAt         time.Time                               `json:"createdAt"`
}

// ToCustomerResponse converts a domain customer to its API shape.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:        c.CustomerID,
		Name:              c.Name,
		Balance:           c.Balance,
		MetalBalances:     c.MetalBalances,
		LastTransactionAt: c.LastTransactionAt,
		CreatedAt:         c.CreatedAt,
	}
}

// ToBalanceSnapshot converts a domain customer to a balance snapshot.
func ToBalanceSnapshot(c *domain.Customer) BalanceSnapshot {
	return BalanceSnapshot{
		CustomerID:        c.CustomerID,
		Name:              c.Name,
		Balance:           c.Balance,
		MetalBalances:     c.MetalBalances,
		LastTransactionAt: c.LastTransactionAt,
	}
}
