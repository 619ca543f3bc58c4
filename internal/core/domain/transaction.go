package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind tags the variant of a transaction entry.
type EntryKind string

const (
	EntrySell     EntryKind = "sell"
	EntryPurchase EntryKind = "purchase"
	EntryMoney    EntryKind = "money"
)

// MoneyDirection indicates which way a money entry moves value.
type MoneyDirection string

const (
	MoneyReceive MoneyDirection = "receive"
	MoneyGive    MoneyDirection = "give"
)

// SettlementType records whether a transaction left anything owing.
type SettlementType string

const (
	SettlementFull    SettlementType = "full"
	SettlementPartial SettlementType = "partial"
)

// TransactionEntry is one line item of a transaction.
//
// Subtotal carries the single most important invariant of the system:
// its sign always means "positive = merchant receives value, negative =
// merchant gives value", for every entry kind. Sell and money-receive entries
// are positive, purchase and money-give entries are negative. Signs are
// derived exclusively in utils/bullion; nothing else re-derives them.
type TransactionEntry struct {
	Kind EntryKind `json:"kind"`

	// Metal fields (sell / purchase).
	ItemType   Denomination     `json:"itemType,omitempty"`
	Weight     decimal.Decimal  `json:"weight"`
	Touch      *decimal.Decimal `json:"touch,omitempty"`
	Cut        *decimal.Decimal `json:"cut,omitempty"`
	PureWeight decimal.Decimal  `json:"pureWeight"`
	Price      decimal.Decimal  `json:"price"`
	MetalOnly  bool             `json:"metalOnly,omitempty"`

	// Stock linkage for rani/rupu lots. StockCreatedAt snapshots the consumed
	// lot's creation time so a reversal can restore it at its original FIFO
	// position.
	StockID        *string    `json:"stockID,omitempty"`
	StockCreatedAt *time.Time `json:"stockCreatedAt,omitempty"`

	// Money fields.
	MoneyType MoneyDirection  `json:"moneyType,omitempty"`
	Amount    decimal.Decimal `json:"amount"`

	Subtotal decimal.Decimal `json:"subtotal"`
}

// Transaction is the mutable transaction record. It is created atomically with
// its first save, edited in place, and removed by a delete that first reverses
// every side effect it ever had.
type Transaction struct {
	TransactionID       string             `json:"transactionID"`
	CustomerID          string             `json:"customerID"`
	Date                time.Time          `json:"date"`  // business date, not audit time
	Entries             []TransactionEntry `json:"entries"`
	Total               decimal.Decimal    `json:"total"` // signed net of entry subtotals
	AmountPaid          decimal.Decimal    `json:"amountPaid"`
	DiscountExtraAmount decimal.Decimal    `json:"discountExtraAmount"`
	SettlementType      SettlementType     `json:"settlementType"`

	// UI pre-fill only, not engine-critical.
	LastGivenMoney       decimal.Decimal `json:"lastGivenMoney"`
	LastToLastGivenMoney decimal.Decimal `json:"lastToLastGivenMoney"`

	AuditFields
}

// IsMoneyOnly reports whether every entry is a money entry.
func (t *Transaction) IsMoneyOnly() bool {
	if len(t.Entries) == 0 {
		return false
	}
	for _, e := range t.Entries {
		if e.Kind != EntryMoney {
			return false
		}
	}
	return true
}

// IsMetalOnly reports whether any entry settles in metal rather than money.
func (t *Transaction) IsMetalOnly() bool {
	for _, e := range t.Entries {
		if e.MetalOnly {
			return true
		}
	}
	return false
}

// StockEffectKind enumerates the stock sub-ledger operations a transaction can
// require. The set is closed so reversal handling is exhaustive: every effect
// applied forward has exactly one inverse (create/remove, consumeFIFO/restore).
type StockEffectKind string

const (
	StockCreate      StockEffectKind = "create"
	StockConsumeFIFO StockEffectKind = "consumeFIFO"
	StockRestore     StockEffectKind = "restore"
	StockRemove      StockEffectKind = "remove"
)

// StockEffect is one stock sub-ledger operation tied to a transaction entry.
// EntryIndex points at the entry whose StockID must be recorded once the
// effect resolves (create and consumeFIFO fill it in; restore and remove
// only act on existing ids).
type StockEffect struct {
	Kind         StockEffectKind
	EntryIndex   int
	Denomination Denomination
	Lot          StockLot // create / restore payload
	StockID      string   // remove target
}

// TransactionEffects is the complete, precomputed side-effect set of one
// engine operation. The repository applies it as a single atomic unit; the
// engine never mutates balances incrementally across an operation.
type TransactionEffects struct {
	MoneyDelta   decimal.Decimal
	MetalDeltas  map[Denomination]decimal.Decimal
	Stock        []StockEffect
	Ledger       []LedgerEntry
	RemoveLedger bool // delete: drop every ledger row of the transaction
	TouchedAt    time.Time
}
