package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one append-only audit row of money movement. It is never
// mutated after creation; the only removal path is deletion of its parent
// transaction.
type LedgerEntry struct {
	LedgerID       string             `json:"ledgerID"`
	TransactionID  string             `json:"transactionID"`
	CustomerID     string             `json:"customerID"`
	Date           time.Time          `json:"date"`    // entry creation time when known, else business date
	AmountReceived decimal.Decimal    `json:"amountReceived"`
	AmountGiven    decimal.Decimal    `json:"amountGiven"`
	Entries        []TransactionEntry `json:"entries"` // snapshot at append time
	CreatedAt      time.Time          `json:"createdAt"`
}
