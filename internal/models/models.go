// Package models holds the persistence row shapes. They mirror the domain
// types closely; the JSON tags on TransactionEntry define the JSONB snapshot
// format shared by the transactions and ledger_entries tables.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	CustomerID        string
	Name              string
	Balance           decimal.Decimal
	LastTransactionAt *time.Time
	CreatedAt         time.Time
	LastUpdatedAt     time.Time
}

// MetalBalance is one row of customer_metal_balances.
type MetalBalance struct {
	CustomerID   string
	Denomination string
	Balance      decimal.Decimal
}

type TransactionEntry struct {
	Kind           string           `json:"kind"`
	ItemType       string           `json:"itemType,omitempty"`
	Weight         decimal.Decimal  `json:"weight"`
	Touch          *decimal.Decimal `json:"touch,omitempty"`
	Cut            *decimal.Decimal `json:"cut,omitempty"`
	PureWeight     decimal.Decimal  `json:"pureWeight"`
	Price          decimal.Decimal  `json:"price"`
	MetalOnly      bool             `json:"metalOnly,omitempty"`
	StockID        *string          `json:"stockID,omitempty"`
	StockCreatedAt *time.Time       `json:"stockCreatedAt,omitempty"`
	MoneyType      string           `json:"moneyType,omitempty"`
	Amount         decimal.Decimal  `json:"amount"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
}

type Transaction struct {
	TransactionID        string
	CustomerID           string
	Date                 time.Time
	Entries              []TransactionEntry // stored as JSONB
	Total                decimal.Decimal
	AmountPaid           decimal.Decimal
	DiscountExtraAmount  decimal.Decimal
	SettlementType       string
	LastGivenMoney       decimal.Decimal
	LastToLastGivenMoney decimal.Decimal
	CreatedAt            time.Time
	LastUpdatedAt        time.Time
}

type LedgerEntry struct {
	LedgerID       string
	TransactionID  string
	CustomerID     string
	Date           time.Time
	AmountReceived decimal.Decimal
	AmountGiven    decimal.Decimal
	Entries        []TransactionEntry // stored as JSONB
	CreatedAt      time.Time
}

type StockLot struct {
	StockID      string
	Denomination string
	Weight       decimal.Decimal
	Touch        decimal.Decimal
	CreatedAt    time.Time
}

// BaseInventory is the single base_inventory row (id = 1).
type BaseInventory struct {
	Money      decimal.Decimal
	Gold999    decimal.Decimal
	Gold995    decimal.Decimal
	Silver     decimal.Decimal
	Rani       decimal.Decimal
	Rupu       decimal.Decimal
	AdjustedAt time.Time
}

type RateCut struct {
	CutID        string
	CustomerID   string
	Denomination string
	Weight       decimal.Decimal
	Rate         decimal.Decimal
	MoneyCredit  decimal.Decimal
	CutDate      time.Time
	CreatedAt    time.Time
}

type Merchant struct {
	MerchantID    string
	Username      string
	PasswordHash  string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}
