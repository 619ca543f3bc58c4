package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot is one discrete physical lot of a stock-tracked denomination
// (rani or rupu). Lots are consumed oldest-first on a sale; restoring a
// consumed lot recreates the identical row, id and creation time included,
// so entries referencing it stay valid and its FIFO position is preserved.
type StockLot struct {
	StockID      string          `json:"stockID"`
	Denomination Denomination    `json:"denomination"`
	Weight       decimal.Decimal `json:"weight"`
	Touch        decimal.Decimal `json:"touch"`
	CreatedAt    time.Time       `json:"createdAt"`
}
