package dto

import (
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddStockLotRequest adds a lot to the stock sub-ledger outside any
// transaction (initial stock entry).
type AddStockLotRequest struct {
	Denomination domain.Denomination `json:"denomination" binding:"required,oneof=rani rupu"`
	Weight       decimal.Decimal     `json:"weight" binding:"required"`
	Touch        decimal.Decimal     `json:"touch" binding:"required"`
}
