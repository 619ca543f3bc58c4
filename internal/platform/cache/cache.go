// Package cache provides a small bounded in-process read cache for customers
// and transactions. Writers evict synchronously before acknowledging a write,
// so a read issued after a write always misses and refetches fresh state.
package cache

import (
	"time"

	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ReadCache holds short-lived copies of frequently re-read records.
type ReadCache struct {
	customers    *expirable.LRU[string, domain.Customer]
	transactions *expirable.LRU[string, domain.Transaction]
}

// New creates a ReadCache bounded by size entries per record type and ttl per
// entry.
func New(size int, ttl time.Duration) *ReadCache {
	return &ReadCache{
		customers:    expirable.NewLRU[string, domain.Customer](size, nil, ttl),
		transactions: expirable.NewLRU[string, domain.Transaction](size, nil, ttl),
	}
}

// GetCustomer returns a cached customer copy if present and fresh.
func (c *ReadCache) GetCustomer(customerID string) (domain.Customer, bool) {
	return c.customers.Get(customerID)
}

// SetCustomer stores a customer copy.
func (c *ReadCache) SetCustomer(customer domain.Customer) {
	c.customers.Add(customer.CustomerID, customer)
}

// EvictCustomer drops a customer entry. Called inside every write path that
// can change the customer's balances, before the write is acknowledged.
func (c *ReadCache) EvictCustomer(customerID string) {
	c.customers.Remove(customerID)
}

// GetTransaction returns a cached transaction copy if present and fresh.
func (c *ReadCache) GetTransaction(transactionID string) (domain.Transaction, bool) {
	return c.transactions.Get(transactionID)
}

// SetTransaction stores a transaction copy.
func (c *ReadCache) SetTransaction(txn domain.Transaction) {
	c.transactions.Add(txn.TransactionID, txn)
}

// EvictTransaction drops a transaction entry.
func (c *ReadCache) EvictTransaction(transactionID string) {
	c.transactions.Remove(transactionID)
}
