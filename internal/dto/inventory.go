package dto

import (
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetBaseInventoryRequest submits the merchant's physically counted stock.
// The service stores an adjusted figure so reconstruction returns exactly
// these values immediately after, without double-counting opening balances.
type SetBaseInventoryRequest struct {
	Money   decimal.Decimal `json:"money"`
	Gold999 decimal.Decimal `json:"gold999"`
	Gold995 decimal.Decimal `json:"gold995"`
	Silver  decimal.Decimal `json:"silver"`
	Rani    decimal.Decimal `json:"rani"`
	Rupu    decimal.Decimal `json:"rupu"`
}

// Metals assembles the per-denomination map from the flat request fields.
func (r SetBaseInventoryRequest) Metals() map[domain.Denomination]decimal.Decimal {
	return map[domain.Denomination]decimal.Decimal{
		domain.Gold999: r.Gold999,
		domain.Gold995: r.Gold995,
		domain.Silver:  r.Silver,
		domain.Rani:    r.Rani,
		domain.Rupu:    r.Rupu,
	}
}
