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
	"github.com/SscSPs/bullion_books_app/internal/utils/bullion"
)

// rateCutService converts part of a customer's metal balance into money
// balance at a quoted rate. It shares the balance store with the transaction
// engine but never touches transactions, ledger rows or stock lots.
type rateCutService struct {
	rateCutRepo  portsrepo.RateCutRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewRateCutService creates a new rate-cut service.
func NewRateCutService(rateCutRepo portsrepo.RateCutRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade) portssvc.RateCutSvcFacade {
	return &rateCutService{
		rateCutRepo:  rateCutRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.RateCutSvcFacade = (*rateCutService)(nil)

// ApplyRateCut decreases the customer's metal balance by the given weight and
// increases their money balance by weight at the quoted rate, in one atomic
// unit together with the audit row and the lock date advance.
func (s *rateCutService) ApplyRateCut(ctx context.Context, customerID string, req dto.ApplyRateCutRequest) (*domain.RateCut, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	denomination := domain.Denomination(req.Denomination)
	if !domain.RateCuttable(denomination) {
		return nil, fmt.Errorf("%w: denomination %q cannot be rate cut", apperrors.ErrValidation, req.Denomination)
	}
	if req.Weight.Sign() <= 0 || req.Rate.Sign() <= 0 {
		return nil, fmt.Errorf("%w: weight and rate must be positive", apperrors.ErrValidation)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cut := domain.RateCut{
		CutID:        utils.NewID(utils.PrefixRateCut),
		CustomerID:   customer.CustomerID,
		Denomination: denomination,
		Weight:       req.Weight,
		Rate:         req.Rate,
		MoneyCredit:  bullion.RateCutCredit(denomination, req.Weight, req.Rate),
		CutDate:      req.CutDate.UTC(),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.rateCutRepo.ApplyRateCut(ctx, cut); err != nil {
		logger.Error("Failed to apply rate cut", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Rate cut applied",
		slog.String("cut_id", cut.CutID),
		slog.String("customer_id", customerID),
		slog.String("denomination", string(denomination)),
		slog.String("money_credit", cut.MoneyCredit.String()))
	return &cut, nil
}

// DeleteLatestRateCut reverses the most recent cut for the customer and
// denomination and recomputes the lock date from the remaining rows.
func (s *rateCutService) DeleteLatestRateCut(ctx context.Context, customerID string, denomination domain.Denomination) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.RateCuttable(denomination) {
		return fmt.Errorf("%w: denomination %q cannot be rate cut", apperrors.ErrValidation, denomination)
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return err
	}

	reversed, err := s.rateCutRepo.DeleteLatestRateCut(ctx, customerID, denomination)
	if err != nil {
		logger.Error("Failed to delete latest rate cut", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Rate cut reversed",
		slog.String("cut_id", reversed.CutID),
		slog.String("customer_id", customerID),
		slog.String("denomination", string(denomination)))
	return nil
}

// ListRateCuts returns the customer's rate-cut history plus the current lock
// date per denomination.
func (s *rateCutService) ListRateCuts(ctx context.Context, customerID string) ([]domain.RateCut, map[domain.Denomination]time.Time, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, nil, err
	}
	cuts, err := s.rateCutRepo.ListRateCuts(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	locks, err := s.rateCutRepo.GetLockDates(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	return cuts, locks, nil
}
