package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/core/services"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

var _ portsrepo.StockRepositoryFacade = (*MockStockRepository)(nil)

func (m *MockStockRepository) AddLot(ctx context.Context, lot domain.StockLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockStockRepository) ListLotsByType(ctx context.Context, denomination domain.Denomination) ([]domain.StockLot, error) {
	args := m.Called(ctx, denomination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLot), args.Error(1)
}

func (m *MockStockRepository) FindLotByID(ctx context.Context, stockID string) (*domain.StockLot, error) {
	args := m.Called(ctx, stockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLot), args.Error(1)
}

// --- Test Suite Setup ---
type StockServiceTestSuite struct {
	suite.Suite
	mockStockRepo *MockStockRepository
	service       portssvc.StockSvcFacade
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockStockRepo = new(MockStockRepository)
	suite.service = services.NewStockService(suite.mockStockRepo)
}

func (suite *StockServiceTestSuite) TestAddLot() {
	ctx := context.Background()

	var saved domain.StockLot
	suite.mockStockRepo.On("AddLot", ctx, mock.AnythingOfType("domain.StockLot")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.StockLot) }).
		Return(nil).Once()

	lot, err := suite.service.AddLot(ctx, dto.AddStockLotRequest{
		Denomination: domain.Rani,
		Weight:       dec("5"),
		Touch:        dec("85"),
	})

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(lot.StockID, "stk_"))
	suite.Equal(domain.Rani, saved.Denomination)
	suite.True(saved.Weight.Equal(dec("5")))
	suite.True(saved.Touch.Equal(dec("85")))
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestAddLot_UntrackedDenomination() {
	ctx := context.Background()

	_, err := suite.service.AddLot(ctx, dto.AddStockLotRequest{
		Denomination: domain.Gold999,
		Weight:       dec("5"),
		Touch:        dec("100"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "AddLot", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestAddLot_NonPositiveWeight() {
	ctx := context.Background()

	_, err := suite.service.AddLot(ctx, dto.AddStockLotRequest{
		Denomination: domain.Rupu,
		Weight:       dec("-1"),
		Touch:        dec("70"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *StockServiceTestSuite) TestListLotsByType() {
	ctx := context.Background()
	lots := []domain.StockLot{
		{StockID: "stk_1690000000000_aaa111", Denomination: domain.Rani, Weight: dec("5"), Touch: dec("85")},
		{StockID: "stk_1695000000000_bbb222", Denomination: domain.Rani, Weight: dec("8"), Touch: dec("90")},
	}
	suite.mockStockRepo.On("ListLotsByType", ctx, domain.Rani).Return(lots, nil).Once()

	got, err := suite.service.ListLotsByType(ctx, domain.Rani)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *StockServiceTestSuite) TestListLotsByType_UntrackedDenomination() {
	ctx := context.Background()

	_, err := suite.service.ListLotsByType(ctx, domain.Silver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
