package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/SscSPs/bullion_books_app/internal/utils"
	"github.com/SscSPs/bullion_books_app/internal/utils/bullion"
	"github.com/shopspring/decimal"
)

var (
	ErrNoEntries        = errors.New("transaction must have at least one entry")
	ErrBadDenomination  = errors.New("unknown denomination")
	ErrMissingMoneyType = errors.New("money entry requires a direction")
	ErrNonPositive      = errors.New("weight, price and amount must be positive")
)

// transactionService is the transaction engine. It turns submitted entries
// into a fully priced transaction plus a precomputed effect set, and hands
// both to the repository for atomic application. Updates and deletes reverse
// the stored transaction's effects the same way, so every operation leaves
// balances, stock lots and ledger rows mutually consistent.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewTransactionService creates the transaction engine service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// buildEntries prices the submitted entries: pure weight, signed subtotal per
// entry, and the running net. All sign decisions happen in utils/bullion.
func buildEntries(reqs []dto.EntryRequest) ([]domain.TransactionEntry, decimal.Decimal, error) {
	if len(reqs) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoEntries)
	}

	entries := make([]domain.TransactionEntry, len(reqs))
	net := decimal.Zero
	for i, r := range reqs {
		e := domain.TransactionEntry{
			Kind:      r.Kind,
			ItemType:  r.ItemType,
			Weight:    r.Weight,
			Touch:     r.Touch,
			Cut:       r.Cut,
			Price:     r.Price,
			MetalOnly: r.MetalOnly,
			MoneyType: r.MoneyType,
			Amount:    r.Amount,
		}

		switch r.Kind {
		case domain.EntrySell, domain.EntryPurchase:
			if !r.ItemType.IsValid() {
				return nil, decimal.Zero, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrBadDenomination, r.ItemType)
			}
			if r.Weight.Sign() <= 0 || r.Price.Sign() < 0 {
				return nil, decimal.Zero, fmt.Errorf("%w: %s (entry %d)", apperrors.ErrValidation, ErrNonPositive, i)
			}
			e.PureWeight = bullion.PureWeight(r.Weight, r.Touch, r.Cut)
		case domain.EntryMoney:
			if r.MoneyType != domain.MoneyReceive && r.MoneyType != domain.MoneyGive {
				return nil, decimal.Zero, fmt.Errorf("%w: %s (entry %d)", apperrors.ErrValidation, ErrMissingMoneyType, i)
			}
			if r.Amount.Sign() <= 0 {
				return nil, decimal.Zero, fmt.Errorf("%w: %s (entry %d)", apperrors.ErrValidation, ErrNonPositive, i)
			}
		default:
			return nil, decimal.Zero, fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, r.Kind)
		}

		subtotal, err := bullion.EntrySubtotal(e)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		e.Subtotal = subtotal
		net = net.Add(subtotal)
		entries[i] = e
	}
	return entries, net, nil
}

// forwardEffects computes the complete effect set of applying txn as-is:
// money or metal balance deltas, stock sub-ledger operations, and the ledger
// row the save emits. FIFO lot choices for sells are left as consumeFIFO
// effects; the repository resolves them inside the same atomic unit.
func forwardEffects(txn *domain.Transaction, finalBalance decimal.Decimal, now time.Time) (domain.TransactionEffects, error) {
	effects := domain.TransactionEffects{
		MetalDeltas: map[domain.Denomination]decimal.Decimal{},
		TouchedAt:   now,
	}

	if txn.IsMetalOnly() {
		for _, e := range txn.Entries {
			if !e.MetalOnly {
				continue
			}
			delta, err := bullion.MetalDelta(e)
			if err != nil {
				return domain.TransactionEffects{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
			}
			effects.MetalDeltas[e.ItemType] = effects.MetalDeltas[e.ItemType].Add(delta)
		}
	} else {
		effects.MoneyDelta = finalBalance
	}

	for i, e := range txn.Entries {
		if !e.ItemType.StockTracked() || e.Kind == domain.EntryMoney {
			continue
		}
		switch e.Kind {
		case domain.EntrySell:
			effects.Stock = append(effects.Stock, domain.StockEffect{
				Kind:         domain.StockConsumeFIFO,
				EntryIndex:   i,
				Denomination: e.ItemType,
			})
		case domain.EntryPurchase:
			touch := decimal.NewFromInt(100)
			if e.Touch != nil {
				touch = *e.Touch
			}
			effects.Stock = append(effects.Stock, domain.StockEffect{
				Kind:         domain.StockCreate,
				EntryIndex:   i,
				Denomination: e.ItemType,
				Lot: domain.StockLot{
					StockID:      utils.NewID(utils.PrefixStock),
					Denomination: e.ItemType,
					Weight:       e.Weight,
					Touch:        touch,
					CreatedAt:    now,
				},
			})
		}
	}

	if ledgerRow, ok := ledgerEntryFor(txn, now); ok {
		effects.Ledger = append(effects.Ledger, ledgerRow)
	}

	return effects, nil
}

// ledgerEntryFor builds the money-movement audit row a save emits, if any:
// one row whenever money changed hands or the transaction is money-only.
func ledgerEntryFor(txn *domain.Transaction, now time.Time) (domain.LedgerEntry, bool) {
	if txn.AmountPaid.IsZero() && !txn.IsMoneyOnly() {
		return domain.LedgerEntry{}, false
	}
	delta := txn.AmountPaid
	if txn.IsMoneyOnly() && txn.AmountPaid.IsZero() {
		delta = txn.Total
	}
	return domain.LedgerEntry{
		LedgerID:       utils.NewID(utils.PrefixLedger),
		TransactionID:  txn.TransactionID,
		CustomerID:     txn.CustomerID,
		Date:           now,
		AmountReceived: decimal.Max(decimal.Zero, delta),
		AmountGiven:    decimal.Max(decimal.Zero, delta.Neg()),
		Entries:        txn.Entries,
		CreatedAt:      now,
	}, true
}

// reversalEffects computes the exact inverse of a stored transaction's
// balance and stock effects, recomputed from its stored fields. The stored
// total must still match the sum of the stored entry subtotals; a mismatch
// means the row can no longer be reversed safely.
func reversalEffects(txn *domain.Transaction, washCustomer bool) (domain.TransactionEffects, error) {
	recomputed := decimal.Zero
	for _, e := range txn.Entries {
		recomputed = recomputed.Add(e.Subtotal)
	}
	if !recomputed.Equal(txn.Total) {
		return domain.TransactionEffects{}, fmt.Errorf("%w: stored total %s does not match entry subtotals %s for %s",
			apperrors.ErrInconsistentState, txn.Total.String(), recomputed.String(), txn.TransactionID)
	}

	effects := domain.TransactionEffects{
		MetalDeltas: map[domain.Denomination]decimal.Decimal{},
	}

	if txn.IsMetalOnly() {
		for _, e := range txn.Entries {
			if !e.MetalOnly {
				continue
			}
			delta, err := bullion.MetalDelta(e)
			if err != nil {
				return domain.TransactionEffects{}, fmt.Errorf("%w: %s", apperrors.ErrInconsistentState, err)
			}
			effects.MetalDeltas[e.ItemType] = effects.MetalDeltas[e.ItemType].Sub(delta)
		}
	} else {
		oldFinal := bullion.FinalBalance(txn.Total, txn.AmountPaid, txn.DiscountExtraAmount, txn.IsMoneyOnly(), washCustomer)
		effects.MoneyDelta = oldFinal.Neg()
	}

	for i, e := range txn.Entries {
		if !e.ItemType.StockTracked() || e.Kind == domain.EntryMoney {
			continue
		}
		if e.StockID == nil {
			return domain.TransactionEffects{}, fmt.Errorf("%w: stock entry %d of %s has no lot id", apperrors.ErrInconsistentState, i, txn.TransactionID)
		}
		switch e.Kind {
		case domain.EntrySell:
			// Recreate the consumed lot byte-for-byte, original creation
			// time included, so it regains its old FIFO position.
			createdAt := time.Now().UTC()
			if e.StockCreatedAt != nil {
				createdAt = *e.StockCreatedAt
			}
			effects.Stock = append(effects.Stock, domain.StockEffect{
				Kind:         domain.StockRestore,
				EntryIndex:   i,
				Denomination: e.ItemType,
				Lot: domain.StockLot{
					StockID:      *e.StockID,
					Denomination: e.ItemType,
					Weight:       e.Weight,
					Touch:        derefOr(e.Touch, decimal.NewFromInt(100)),
					CreatedAt:    createdAt,
				},
			})
		case domain.EntryPurchase:
			effects.Stock = append(effects.Stock, domain.StockEffect{
				Kind:         domain.StockRemove,
				EntryIndex:   i,
				Denomination: e.ItemType,
				StockID:      *e.StockID,
			})
		}
	}

	return effects, nil
}

func derefOr(d *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if d != nil {
		return *d
	}
	return fallback
}

// mergeEffects combines a reversal and a forward effect set into one atomic
// unit. Reversal stock operations run first so a forward consumeFIFO can pick
// up a just-restored lot; balance deltas collapse into a single combined
// write with no observable intermediate state.
func mergeEffects(reversal, forward domain.TransactionEffects) domain.TransactionEffects {
	merged := domain.TransactionEffects{
		MoneyDelta:  reversal.MoneyDelta.Add(forward.MoneyDelta),
		MetalDeltas: map[domain.Denomination]decimal.Decimal{},
		TouchedAt:   forward.TouchedAt,
	}
	for d, v := range reversal.MetalDeltas {
		merged.MetalDeltas[d] = merged.MetalDeltas[d].Add(v)
	}
	for d, v := range forward.MetalDeltas {
		merged.MetalDeltas[d] = merged.MetalDeltas[d].Add(v)
	}
	merged.Stock = append(merged.Stock, reversal.Stock...)
	merged.Stock = append(merged.Stock, forward.Stock...)
	merged.Ledger = append(merged.Ledger, reversal.Ledger...)
	merged.Ledger = append(merged.Ledger, forward.Ledger...)
	return merged
}

// CreateTransaction prices the submitted entries, computes the effect set,
// and persists everything atomically. Implements portssvc.TransactionSvcFacade.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	entries, net, err := buildEntries(req.Entries)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if req.SaveDate != nil {
		date = req.SaveDate.UTC()
	}

	txn := &domain.Transaction{
		TransactionID:       utils.NewID(utils.PrefixTransaction),
		CustomerID:          customer.CustomerID,
		Date:                date,
		Entries:             entries,
		Total:               net,
		AmountPaid:          req.AmountPaid,
		DiscountExtraAmount: req.DiscountExtraAmount,
		LastGivenMoney:      req.AmountPaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	finalBalance := bullion.FinalBalance(net, req.AmountPaid, req.DiscountExtraAmount, txn.IsMoneyOnly(), customer.IsWash())
	txn.SettlementType = settlementFor(finalBalance)

	effects, err := forwardEffects(txn, finalBalance, now)
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, effects); err != nil {
		logger.Error("Failed to save transaction", slog.String("customer_id", customer.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("customer_id", customer.CustomerID),
		slog.String("total", net.String()),
		slog.String("final_balance", finalBalance.String()))
	return txn, nil
}

// UpdateTransaction replaces a transaction's entries and payment in place.
// The stored transaction's effects are reversed and the new effects applied
// as one combined delta, so the balance never shows an intermediate state.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, existing.CustomerID)
	if err != nil {
		return nil, err
	}

	reversal, err := reversalEffects(existing, customer.IsWash())
	if err != nil {
		return nil, err
	}

	entries, net, err := buildEntries(req.Entries)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	oldPaid := existing.AmountPaid

	updated := &domain.Transaction{
		TransactionID:        existing.TransactionID,
		CustomerID:           existing.CustomerID,
		Date:                 existing.Date,
		Entries:              entries,
		Total:                net,
		AmountPaid:           req.AmountPaid,
		DiscountExtraAmount:  req.DiscountExtraAmount,
		LastGivenMoney:       req.AmountPaid,
		LastToLastGivenMoney: existing.LastGivenMoney,
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			LastUpdatedAt: now,
		},
	}
	if req.SaveDate != nil {
		updated.Date = req.SaveDate.UTC()
	}

	finalBalance := bullion.FinalBalance(net, req.AmountPaid, req.DiscountExtraAmount, updated.IsMoneyOnly(), customer.IsWash())
	updated.SettlementType = settlementFor(finalBalance)

	forward, err := forwardEffects(updated, finalBalance, now)
	if err != nil {
		return nil, err
	}

	// The full forward ledger row is replaced by a delta row: only the money
	// that actually changed hands in this edit is auditable as new movement.
	forward.Ledger = nil
	paidDelta := req.AmountPaid.Sub(oldPaid)
	if !paidDelta.IsZero() {
		forward.Ledger = []domain.LedgerEntry{{
			LedgerID:       utils.NewID(utils.PrefixLedger),
			TransactionID:  updated.TransactionID,
			CustomerID:     updated.CustomerID,
			Date:           now,
			AmountReceived: decimal.Max(decimal.Zero, paidDelta),
			AmountGiven:    decimal.Max(decimal.Zero, paidDelta.Neg()),
			Entries:        updated.Entries,
			CreatedAt:      now,
		}}
	} else if updated.IsMoneyOnly() {
		// No payment delta: the row carries the edit's new net amount, so the
		// day's money movement stays reconstructible from the ledger alone.
		net := updated.Total
		forward.Ledger = []domain.LedgerEntry{{
			LedgerID:       utils.NewID(utils.PrefixLedger),
			TransactionID:  updated.TransactionID,
			CustomerID:     updated.CustomerID,
			Date:           now,
			AmountReceived: decimal.Max(decimal.Zero, net),
			AmountGiven:    decimal.Max(decimal.Zero, net.Neg()),
			Entries:        updated.Entries,
			CreatedAt:      now,
		}}
	}

	effects := mergeEffects(reversal, forward)

	if err := s.txnRepo.UpdateTransaction(ctx, updated, effects); err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.String("total", net.String()),
		slog.String("final_balance", finalBalance.String()))
	return updated, nil
}

// DeleteTransaction reverses every side effect the stored transaction ever
// had, removes its ledger rows, then removes the row itself. Deleting an
// absent transaction reports not found rather than re-applying a reversal.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, existing.CustomerID)
	if err != nil {
		return err
	}

	effects, err := reversalEffects(existing, customer.IsWash())
	if err != nil {
		return err
	}
	effects.RemoveLedger = true
	effects.TouchedAt = time.Now().UTC()

	if err := s.txnRepo.DeleteTransaction(ctx, existing, effects); err != nil {
		logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// GetTransactionByID retrieves a transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactionsByCustomer retrieves a customer's transactions, newest first.
func (s *transactionService) ListTransactionsByCustomer(ctx context.Context, customerID string) ([]domain.Transaction, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.txnRepo.ListTransactionsByCustomer(ctx, customerID)
}

func settlementFor(finalBalance decimal.Decimal) domain.SettlementType {
	if finalBalance.IsZero() {
		return domain.SettlementFull
	}
	return domain.SettlementPartial
}
