package dto

import (
	"time"

	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is one submitted line item. Subtotals and pure weights are
// derived server-side; clients never submit signed values.
type EntryRequest struct {
	Kind domain.EntryKind `json:"kind" binding:"required,oneof=sell purchase money"`

	// Metal fields (sell / purchase).
	ItemType  domain.Denomination `json:"itemType,omitempty" binding:"omitempty,denomination"`
	Weight    decimal.Decimal     `json:"weight"`
	Touch     *decimal.Decimal    `json:"touch,omitempty"`
	Cut       *decimal.Decimal    `json:"cut,omitempty"`
	Price     decimal.Decimal     `json:"price"`
	MetalOnly bool                `json:"metalOnly,omitempty"`

	// Money fields.
	MoneyType domain.MoneyDirection `json:"moneyType,omitempty" binding:"omitempty,oneof=receive give"`
	Amount    decimal.Decimal       `json:"amount"`
}

// CreateTransactionRequest is the engine's create input.
type CreateTransactionRequest struct {
	CustomerID          string          `json:"customerID" binding:"required"`
	Entries             []EntryRequest  `json:"entries" binding:"required"`
	AmountPaid          decimal.Decimal `json:"amountPaid"`
	DiscountExtraAmount decimal.Decimal `json:"discountExtraAmount"`
	SaveDate            *time.Time      `json:"saveDate,omitempty"`
}

// UpdateTransactionRequest replaces a transaction's entries and payment in place.
type UpdateTransactionRequest struct {
	Entries             []EntryRequest  `json:"entries" binding:"required"`
	AmountPaid          decimal.Decimal `json:"amountPaid"`
	DiscountExtraAmount decimal.Decimal `json:"discountExtraAmount"`
	SaveDate            *time.Time      `json:"saveDate,omitempty"`
}

// TransactionResponse is the API shape of a transaction.
type TransactionResponse struct {
	TransactionID        string                    `json:"transactionID"`
	CustomerID           string                    `json:"customerID"`
	Date                 time.Time                 `json:"date"`
	Entries              []domain.TransactionEntry `json:"entries"`
	Total                decimal.Decimal           `json:"total"`
	AmountPaid           decimal.Decimal           `json:"amountPaid"`
	DiscountExtraAmount  decimal.Decimal           `json:"discountExtraAmount"`
	SettlementType       domain.SettlementType     `json:"settlementType"`
	LastGivenMoney       decimal.Decimal           `json:"lastGivenMoney"`
	LastToLastGivenMoney decimal.Decimal           `json:"lastToLastGivenMoney"`
	CreatedAt            time.Time                 `json:"createdAt"`
	LastUpdatedAt        time.Time                 `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain transaction to its API shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        t.TransactionID,
		CustomerID:           t.CustomerID,
		Date:                 t.Date,
		Entries:              t.Entries,
		Total:                t.Total,
		AmountPaid:           t.AmountPaid,
		DiscountExtraAmount:  t.DiscountExtraAmount,
		SettlementType:       t.SettlementType,
		LastGivenMoney:       t.LastGivenMoney,
		LastToLastGivenMoney: t.LastToLastGivenMoney,
		CreatedAt:            t.CreatedAt,
		LastUpdatedAt:        t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
