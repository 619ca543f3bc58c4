package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateCut is one audit row of the rate-adjustment feature: a bulk cut of a
// customer's metal balance into their money balance at a quoted rate.
type RateCut struct {
	CutID        string          `json:"cutID"`
	CustomerID   string          `json:"customerID"`
	Denomination Denomination    `json:"denomination"` // gold999, gold995 or silver
	Weight       decimal.Decimal `json:"weight"`
	Rate         decimal.Decimal `json:"rate"`
	MoneyCredit  decimal.Decimal `json:"moneyCredit"`  // weight / unit divisor * rate
	CutDate      time.Time       `json:"cutDate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// RateCuttable reports whether the denomination participates in rate cuts.
func RateCuttable(d Denomination) bool {
	return d == Gold999 || d == Gold995 || d == Silver
}
