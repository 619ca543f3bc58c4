package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/core/services"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateCutRepository ---
type MockRateCutRepository struct {
	mock.Mock
}

var _ portsrepo.RateCutRepositoryFacade = (*MockRateCutRepository)(nil)

func (m *MockRateCutRepository) ApplyRateCut(ctx context.Context, cut domain.RateCut) error {
	args := m.Called(ctx, cut)
	return args.Error(0)
}

func (m *MockRateCutRepository) DeleteLatestRateCut(ctx context.Context, customerID string, denomination domain.Denomination) (*domain.RateCut, error) {
	args := m.Called(ctx, customerID, denomination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateCut), args.Error(1)
}

func (m *MockRateCutRepository) ListRateCuts(ctx context.Context, customerID string) ([]domain.RateCut, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateCut), args.Error(1)
}

func (m *MockRateCutRepository) GetLockDates(ctx context.Context, customerID string) (map[domain.Denomination]time.Time, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Denomination]time.Time), args.Error(1)
}

// --- Test Suite Setup ---
type RateCutServiceTestSuite struct {
	suite.Suite
	mockRateCutRepo  *MockRateCutRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.RateCutSvcFacade
	customer         domain.Customer
}

func (suite *RateCutServiceTestSuite) SetupTest() {
	suite.mockRateCutRepo = new(MockRateCutRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewRateCutService(suite.mockRateCutRepo, suite.mockCustomerRepo)

	suite.customer = domain.Customer{
		CustomerID:    "cust_1700000000000_abc123",
		Name:          "Ramesh",
		Balance:       decimal.Zero,
		MetalBalances: domain.ZeroMetals(),
	}
	suite.mockCustomerRepo.On("FindCustomerByID", mock.Anything, suite.customer.CustomerID).Return(&suite.customer, nil)
}

func (suite *RateCutServiceTestSuite) TestApplyRateCut_Gold() {
	ctx := context.Background()

	var applied domain.RateCut
	suite.mockRateCutRepo.On("ApplyRateCut", ctx, mock.AnythingOfType("domain.RateCut")).
		Run(func(args mock.Arguments) { applied = args.Get(1).(domain.RateCut) }).
		Return(nil).Once()

	cutDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cut, err := suite.service.ApplyRateCut(ctx, suite.customer.CustomerID, dto.ApplyRateCutRequest{
		Denomination: "gold999",
		Weight:       dec("25"),
		Rate:         dec("98000"),
		CutDate:      cutDate,
	})

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(cut.CutID, "cut_"))
	// 25g at 98000 per 10g credits 245000 to the money balance.
	suite.True(cut.MoneyCredit.Equal(dec("245000")), "credit was %s", cut.MoneyCredit)
	suite.Equal(cutDate, applied.CutDate)
	suite.Equal(domain.Gold999, applied.Denomination)
	suite.mockRateCutRepo.AssertExpectations(suite.T())
}

func (suite *RateCutServiceTestSuite) TestApplyRateCut_SilverUsesKiloRate() {
	ctx := context.Background()

	suite.mockRateCutRepo.On("ApplyRateCut", ctx, mock.AnythingOfType("domain.RateCut")).Return(nil).Once()

	cut, err := suite.service.ApplyRateCut(ctx, suite.customer.CustomerID, dto.ApplyRateCutRequest{
		Denomination: "silver",
		Weight:       dec("500"),
		Rate:         dec("90000"),
		CutDate:      time.Now(),
	})

	suite.Require().NoError(err)
	suite.True(cut.MoneyCredit.Equal(dec("45000")), "500g at 90000 per kg is 45000, got %s", cut.MoneyCredit)
}

func (suite *RateCutServiceTestSuite) TestApplyRateCut_StockTrackedDenominationRejected() {
	ctx := context.Background()

	_, err := suite.service.ApplyRateCut(ctx, suite.customer.CustomerID, dto.ApplyRateCutRequest{
		Denomination: "rani",
		Weight:       dec("5"),
		Rate:         dec("98000"),
		CutDate:      time.Now(),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateCutRepo.AssertNotCalled(suite.T(), "ApplyRateCut", mock.Anything, mock.Anything)
}

func (suite *RateCutServiceTestSuite) TestApplyRateCut_NonPositiveWeight() {
	ctx := context.Background()

	_, err := suite.service.ApplyRateCut(ctx, suite.customer.CustomerID, dto.ApplyRateCutRequest{
		Denomination: "gold995",
		Weight:       dec("0"),
		Rate:         dec("98000"),
		CutDate:      time.Now(),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateCutServiceTestSuite) TestDeleteLatestRateCut() {
	ctx := context.Background()
	reversed := &domain.RateCut{
		CutID:        "cut_1700000000000_bbb222",
		CustomerID:   suite.customer.CustomerID,
		Denomination: domain.Gold999,
		Weight:       dec("25"),
		Rate:         dec("98000"),
		MoneyCredit:  dec("245000"),
	}
	suite.mockRateCutRepo.On("DeleteLatestRateCut", ctx, suite.customer.CustomerID, domain.Gold999).Return(reversed, nil).Once()

	err := suite.service.DeleteLatestRateCut(ctx, suite.customer.CustomerID, domain.Gold999)

	suite.Require().NoError(err)
	suite.mockRateCutRepo.AssertExpectations(suite.T())
}

func (suite *RateCutServiceTestSuite) TestDeleteLatestRateCut_NoneLeft() {
	ctx := context.Background()
	suite.mockRateCutRepo.On("DeleteLatestRateCut", ctx, suite.customer.CustomerID, domain.Silver).
		Return(nil, apperrors.NewNotFoundError("no rate cuts for denomination")).Once()

	err := suite.service.DeleteLatestRateCut(ctx, suite.customer.CustomerID, domain.Silver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RateCutServiceTestSuite) TestListRateCuts() {
	ctx := context.Background()
	cuts := []domain.RateCut{{CutID: "cut_1700000000000_ccc333", CustomerID: suite.customer.CustomerID, Denomination: domain.Gold999}}
	locks := map[domain.Denomination]time.Time{domain.Gold999: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}
	suite.mockRateCutRepo.On("ListRateCuts", ctx, suite.customer.CustomerID).Return(cuts, nil).Once()
	suite.mockRateCutRepo.On("GetLockDates", ctx, suite.customer.CustomerID).Return(locks, nil).Once()

	gotCuts, gotLocks, err := suite.service.ListRateCuts(ctx, suite.customer.CustomerID)

	suite.Require().NoError(err)
	suite.Len(gotCuts, 1)
	suite.Equal(locks[domain.Gold999], gotLocks[domain.Gold999])
}

func TestRateCutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateCutServiceTestSuite))
}
