package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyRateCutRequest converts part of a customer's metal balance into money
// balance at the quoted rate.
type ApplyRateCutRequest struct {
	Denomination string          `json:"denomination" binding:"required,oneof=gold999 gold995 silver"`
	Weight       decimal.Decimal `json:"weight" binding:"required"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	CutDate      time.Time       `json:"cutDate" binding:"required"`
}
