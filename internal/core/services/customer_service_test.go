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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) ListLedgerByCustomer(ctx context.Context, customerID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgerByTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Test Suite Setup ---
type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockLedgerRepo   *MockLedgerRepository
	service          portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewCustomerService(suite.mockCustomerRepo, suite.mockLedgerRepo)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer() {
	ctx := context.Background()

	var saved domain.Customer
	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Customer) }).
		Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "Ramesh"})

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(customer.CustomerID, "cust_"))
	suite.Equal("Ramesh", customer.Name)
	suite.True(saved.Balance.IsZero())
	for _, d := range domain.Denominations {
		suite.True(saved.MetalBalances[d].IsZero(), "denomination %s should start at zero", d)
	}
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_DuplicateName() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "Ramesh"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CustomerServiceTestSuite) TestGetCustomerBalance() {
	ctx := context.Background()
	customer := &domain.Customer{
		CustomerID:    "cust_1700000000000_abc123",
		Name:          "Ramesh",
		Balance:       decimal.RequireFromString("-60000"),
		MetalBalances: domain.ZeroMetals(),
	}
	customer.MetalBalances[domain.Rani] = decimal.RequireFromString("4.25")
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()

	snapshot, err := suite.service.GetCustomerBalance(ctx, customer.CustomerID)

	suite.Require().NoError(err)
	suite.Equal(customer.CustomerID, snapshot.CustomerID)
	suite.True(snapshot.Balance.Equal(customer.Balance))
	suite.True(snapshot.MetalBalances[domain.Rani].Equal(customer.MetalBalances[domain.Rani]))
}

func (suite *CustomerServiceTestSuite) TestGetCustomerLedger_UnknownCustomer() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "cust_missing").Return(nil, apperrors.NewNotFoundError("customer not found")).Once()

	_, err := suite.service.GetCustomerLedger(ctx, "cust_missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListLedgerByCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestGetCustomerLedger() {
	ctx := context.Background()
	customer := &domain.Customer{CustomerID: "cust_1700000000000_abc123", MetalBalances: domain.ZeroMetals()}
	rows := []domain.LedgerEntry{{LedgerID: "ldg_1700000000000_aaa111", CustomerID: customer.CustomerID}}
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockLedgerRepo.On("ListLedgerByCustomer", ctx, customer.CustomerID).Return(rows, nil).Once()

	got, err := suite.service.GetCustomerLedger(ctx, customer.CustomerID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
