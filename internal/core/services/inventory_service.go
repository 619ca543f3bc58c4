package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// inventoryService derives current on-hand inventory. The stored base figure
// is kept pre-adjusted for the opening effects present when it was set, so
// reconstruction re-adds current customer balances and running transaction
// effects without double-counting.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	customerRepo  portsrepo.CustomerRepositoryFacade
	txnRepo       portsrepo.TransactionRepositoryFacade
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		customerRepo:  customerRepo,
		txnRepo:       txnRepo,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// transactionFolds sums the physical effect of every transaction: money that
// actually changed hands, and pure metal weight moved in or out of the shop.
func transactionFolds(txns []domain.Transaction) (decimal.Decimal, map[domain.Denomination]decimal.Decimal) {
	money := decimal.Zero
	metals := domain.ZeroMetals()

	for i := range txns {
		t := &txns[i]

		// Money flow: the recorded payment, flowing in on a net sell and out
		// on a net purchase. Money-only transactions with no payment move
		// their signed net directly.
		switch {
		case t.IsMoneyOnly() && t.AmountPaid.IsZero():
			money = money.Add(t.Total)
		case t.Total.Sign() >= 0:
			money = money.Add(t.AmountPaid)
		default:
			money = money.Sub(t.AmountPaid)
		}

		for _, e := range t.Entries {
			if e.Kind == domain.EntryMoney {
				continue
			}
			pure := e.PureWeight
			if e.Kind == domain.EntrySell {
				metals[e.ItemType] = metals[e.ItemType].Sub(pure)
			} else {
				metals[e.ItemType] = metals[e.ItemType].Add(pure)
			}
		}
	}
	return money, metals
}

// openingEffects aggregates what reconstruction will re-add on top of the
// stored base: current customer balances (negated) plus transaction folds.
func (s *inventoryService) openingEffects(ctx context.Context) (decimal.Decimal, map[domain.Denomination]decimal.Decimal, error) {
	sums, err := s.customerRepo.SumBalances(ctx)
	if err != nil {
		return decimal.Zero, nil, err
	}
	txns, err := s.txnRepo.ListAllTransactions(ctx)
	if err != nil {
		return decimal.Zero, nil, err
	}
	foldMoney, foldMetals := transactionFolds(txns)

	money := foldMoney.Sub(sums.Money)
	metals := domain.ZeroMetals()
	for _, d := range domain.Denominations {
		metals[d] = foldMetals[d].Sub(sums.Metals[d])
	}
	return money, metals, nil
}

// Reconstruct derives the current on-hand picture from the stored base,
// current customer balances and the running effect of all transactions.
func (s *inventoryService) Reconstruct(ctx context.Context) (*domain.InventorySnapshot, error) {
	base, err := s.inventoryRepo.GetBaseInventory(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			base = &domain.BaseInventory{Money: decimal.Zero, Metals: domain.ZeroMetals()}
		} else {
			return nil, err
		}
	}

	effMoney, effMetals, err := s.openingEffects(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.InventorySnapshot{
		Money:           base.Money.Add(effMoney),
		Metals:          domain.ZeroMetals(),
		ReconstructedAt: time.Now().UTC(),
	}
	for _, d := range domain.Denominations {
		snapshot.Metals[d] = base.Metals[d].Add(effMetals[d])
	}
	return snapshot, nil
}

// SetBaseInventory stores the merchant's counted stock, pre-adjusted so that
// an immediate Reconstruct returns exactly the counted figures.
func (s *inventoryService) SetBaseInventory(ctx context.Context, req dto.SetBaseInventoryRequest) (*domain.BaseInventory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	effMoney, effMetals, err := s.openingEffects(ctx)
	if err != nil {
		return nil, err
	}

	counted := req.Metals()
	base := domain.BaseInventory{
		Money:      req.Money.Sub(effMoney),
		Metals:     domain.ZeroMetals(),
		AdjustedAt: time.Now().UTC(),
	}
	for _, d := range domain.Denominations {
		base.Metals[d] = counted[d].Sub(effMetals[d])
	}

	if err := s.inventoryRepo.SetBaseInventory(ctx, base); err != nil {
		logger.Error("Failed to set base inventory", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Base inventory set", slog.String("money", req.Money.String()))
	return &base, nil
}
