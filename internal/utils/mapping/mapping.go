// Package mapping converts between persistence models and domain types.
package mapping

import (
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/SscSPs/bullion_books_app/internal/models"
)

func ToModelEntry(e domain.TransactionEntry) models.TransactionEntry {
	return models.TransactionEntry{
		Kind:           string(e.Kind),
		ItemType:       string(e.ItemType),
		Weight:         e.Weight,
		Touch:          e.Touch,
		Cut:            e.Cut,
		PureWeight:     e.PureWeight,
		Price:          e.Price,
		MetalOnly:      e.MetalOnly,
		StockID:        e.StockID,
		StockCreatedAt: e.StockCreatedAt,
		MoneyType:      string(e.MoneyType),
		Amount:         e.Amount,
		Subtotal:       e.Subtotal,
	}
}

func ToDomainEntry(m models.TransactionEntry) domain.TransactionEntry {
	return domain.TransactionEntry{
		Kind:           domain.EntryKind(m.Kind),
		ItemType:       domain.Denomination(m.ItemType),
		Weight:         m.Weight,
		Touch:          m.Touch,
		Cut:            m.Cut,
		PureWeight:     m.PureWeight,
		Price:          m.Price,
		MetalOnly:      m.MetalOnly,
		StockID:        m.StockID,
		StockCreatedAt: m.StockCreatedAt,
		MoneyType:      domain.MoneyDirection(m.MoneyType),
		Amount:         m.Amount,
		Subtotal:       m.Subtotal,
	}
}

func ToModelEntrySlice(entries []domain.TransactionEntry) []models.TransactionEntry {
	out := make([]models.TransactionEntry, len(entries))
	for i, e := range entries {
		out[i] = ToModelEntry(e)
	}
	return out
}

func ToDomainEntrySlice(entries []models.TransactionEntry) []domain.TransactionEntry {
	out := make([]domain.TransactionEntry, len(entries))
	for i, e := range entries {
		out[i] = ToDomainEntry(e)
	}
	return out
}

func ToModelTransaction(t domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:        t.TransactionID,
		CustomerID:           t.CustomerID,
		Date:                 t.Date,
		Entries:              ToModelEntrySlice(t.Entries),
		Total:                t.Total,
		AmountPaid:           t.AmountPaid,
		DiscountExtraAmount:  t.DiscountExtraAmount,
		SettlementType:       string(t.SettlementType),
		LastGivenMoney:       t.LastGivenMoney,
		LastToLastGivenMoney: t.LastToLastGivenMoney,
		CreatedAt:            t.CreatedAt,
		LastUpdatedAt:        t.LastUpdatedAt,
	}
}

func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		CustomerID:           m.CustomerID,
		Date:                 m.Date,
		Entries:              ToDomainEntrySlice(m.Entries),
		Total:                m.Total,
		AmountPaid:           m.AmountPaid,
		DiscountExtraAmount:  m.DiscountExtraAmount,
		SettlementType:       domain.SettlementType(m.SettlementType),
		LastGivenMoney:       m.LastGivenMoney,
		LastToLastGivenMoney: m.LastToLastGivenMoney,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func ToModelLedgerEntry(l domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerID:       l.LedgerID,
		TransactionID:  l.TransactionID,
		CustomerID:     l.CustomerID,
		Date:           l.Date,
		AmountReceived: l.AmountReceived,
		AmountGiven:    l.AmountGiven,
		Entries:        ToModelEntrySlice(l.Entries),
		CreatedAt:      l.CreatedAt,
	}
}

func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerID:       m.LedgerID,
		TransactionID:  m.TransactionID,
		CustomerID:     m.CustomerID,
		Date:           m.Date,
		AmountReceived: m.AmountReceived,
		AmountGiven:    m.AmountGiven,
		Entries:        ToDomainEntrySlice(m.Entries),
		CreatedAt:      m.CreatedAt,
	}
}

func ToModelStockLot(l domain.StockLot) models.StockLot {
	return models.StockLot{
		StockID:      l.StockID,
		Denomination: string(l.Denomination),
		Weight:       l.Weight,
		Touch:        l.Touch,
		CreatedAt:    l.CreatedAt,
	}
}

func ToDomainStockLot(m models.StockLot) domain.StockLot {
	return domain.StockLot{
		StockID:      m.StockID,
		Denomination: domain.Denomination(m.Denomination),
		Weight:       m.Weight,
		Touch:        m.Touch,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainCustomer assembles a customer from its row and its metal balance
// rows. Denominations with no row come out as zero.
func ToDomainCustomer(m models.Customer, metals []models.MetalBalance) domain.Customer {
	balances := domain.ZeroMetals()
	for _, mb := range metals {
		balances[domain.Denomination(mb.Denomination)] = mb.Balance
	}
	return domain.Customer{
		CustomerID:        m.CustomerID,
		Name:              m.Name,
		Balance:           m.Balance,
		MetalBalances:     balances,
		LastTransactionAt: m.LastTransactionAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func ToDomainRateCut(m models.RateCut) domain.RateCut {
	return domain.RateCut{
		CutID:        m.CutID,
		CustomerID:   m.CustomerID,
		Denomination: domain.Denomination(m.Denomination),
		Weight:       m.Weight,
		Rate:         m.Rate,
		MoneyCredit:  m.MoneyCredit,
		CutDate:      m.CutDate,
		CreatedAt:    m.CreatedAt,
	}
}
