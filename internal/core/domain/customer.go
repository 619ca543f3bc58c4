package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WashCustomerID identifies the reserved customer used for manual money
// adjustments. Money-only transactions against it never move its balance.
const WashCustomerID = "cust_system_wash"

// Customer is a trading counterparty of the merchant.
//
// Balance sign convention: positive = customer owes the merchant,
// negative = the merchant owes the customer. The same convention applies to
// every per-denomination metal balance. Balances are mutated only by the
// transaction engine and the rate-cut feature.
type Customer struct {
	CustomerID        string                           `json:"customerID"`
	Name              string                           `json:"name"`
	Balance           decimal.Decimal                  `json:"balance"`
	MetalBalances     map[Denomination]decimal.Decimal `json:"metalBalances"`
	LastTransactionAt *time.Time                       `json:"lastTransactionAt,omitempty"`
	AuditFields
}

// IsWash reports whether this is the reserved adjustment customer.
func (c *Customer) IsWash() bool {
	return c.CustomerID == WashCustomerID
}
