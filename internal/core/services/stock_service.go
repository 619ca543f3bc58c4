package services

import (
	"context"
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
)

// stockService manages standalone stock lot entry and reads. Lots consumed or
// created by transactions go through the transaction engine instead.
type stockService struct {
	stockRepo portsrepo.StockRepositoryFacade
}

// NewStockService creates a new stock service.
func NewStockService(stockRepo portsrepo.StockRepositoryFacade) portssvc.StockSvcFacade {
	return &stockService{stockRepo: stockRepo}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

// AddLot records an initial stock lot outside any transaction.
func (s *stockService) AddLot(ctx context.Context, req dto.AddStockLotRequest) (*domain.StockLot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Denomination.StockTracked() {
		return nil, fmt.Errorf("%w: denomination %q is not stock tracked", apperrors.ErrValidation, req.Denomination)
	}
	if req.Weight.Sign() <= 0 || req.Touch.Sign() <= 0 {
		return nil, fmt.Errorf("%w: weight and touch must be positive", apperrors.ErrValidation)
	}

	lot := domain.StockLot{
		StockID:      utils.NewID(utils.PrefixStock),
		Denomination: req.Denomination,
		Weight:       req.Weight,
		Touch:        req.Touch,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.stockRepo.AddLot(ctx, lot); err != nil {
		logger.Error("Failed to add stock lot", slog.String("denomination", string(req.Denomination)), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Stock lot added", slog.String("stock_id", lot.StockID), slog.String("denomination", string(lot.Denomination)))
	return &lot, nil
}

// ListLotsByType lists the on-hand lots of a denomination, oldest first.
func (s *stockService) ListLotsByType(ctx context.Context, denomination domain.Denomination) ([]domain.StockLot, error) {
	if !denomination.StockTracked() {
		return nil, fmt.Errorf("%w: denomination %q is not stock tracked", apperrors.ErrValidation, denomination)
	}
	return s.stockRepo.ListLotsByType(ctx, denomination)
}
