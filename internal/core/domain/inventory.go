package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseInventory is the merchant's stock at a reference point: money plus one
// quantity per denomination. It is stored already adjusted for the opening
// effects present when it was set, so reconstruction can re-add current
// customer balances and running transaction effects without double-counting.
type BaseInventory struct {
	Money      decimal.Decimal                  `json:"money"`
	Metals     map[Denomination]decimal.Decimal `json:"metals"`
	AdjustedAt time.Time                        `json:"adjustedAt"`
}

// InventorySnapshot is the derived current on-hand picture.
type InventorySnapshot struct {
	Money           decimal.Decimal                  `json:"money"`
	Metals          map[Denomination]decimal.Decimal `json:"metals"`
	ReconstructedAt time.Time                        `json:"reconstructedAt"`
}

// BalanceSums aggregates every customer's open balances, used as the opening
// balance adjustment during inventory reconstruction.
type BalanceSums struct {
	Money  decimal.Decimal
	Metals map[Denomination]decimal.Decimal
}

// ZeroMetals returns a metal quantity map with every denomination at zero.
func ZeroMetals() map[Denomination]decimal.Decimal {
	m := make(map[Denomination]decimal.Decimal, len(Denominations))
	for _, d := range Denominations {
		m[d] = decimal.Zero
	}
	return m
}
