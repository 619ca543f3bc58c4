package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/SscSPs/bullion_books_app/internal/handlers"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactionsByCustomer(ctx context.Context, customerID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	jwtSecret              string
}

func (suite *TransactionHandlerTestSuite) generateTestToken(merchantID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "bullion-books-test",
		Subject:   merchantID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockTransactionService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockTransactionService)
}

func (suite *TransactionHandlerTestSuite) authorizedRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("mer_1700000000000_abc123"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	req := dto.CreateTransactionRequest{
		CustomerID: "cust_1700000000000_abc123",
		Entries: []dto.EntryRequest{
			{Kind: domain.EntrySell, ItemType: domain.Gold999, Weight: decimal.NewFromInt(10), Price: decimal.NewFromInt(100000)},
		},
		AmountPaid: decimal.NewFromInt(40000),
	}
	created := &domain.Transaction{
		TransactionID:  "txn_1700000000000_def456",
		CustomerID:     req.CustomerID,
		Total:          decimal.NewFromInt(100000),
		AmountPaid:     decimal.NewFromInt(40000),
		SettlementType: domain.SettlementPartial,
	}

	suite.mockTransactionService.On("CreateTransaction",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.CustomerID == req.CustomerID && len(r.Entries) == 1
		}),
	).Return(created, nil).Once()

	w := suite.authorizedRequest(http.MethodPost, "/api/v1/transactions", req)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(created.TransactionID, body.TransactionID)
	suite.Equal(domain.SettlementPartial, body.SettlementType)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ValidationError() {
	suite.mockTransactionService.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	req := dto.CreateTransactionRequest{
		CustomerID: "cust_1700000000000_abc123",
		Entries: []dto.EntryRequest{
			{Kind: domain.EntryMoney, MoneyType: domain.MoneyReceive, Amount: decimal.NewFromInt(100)},
		},
	}
	w := suite.authorizedRequest(http.MethodPost, "/api/v1/transactions", req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_InsufficientStock() {
	suite.mockTransactionService.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrInsufficientStock).Once()

	req := dto.CreateTransactionRequest{
		CustomerID: "cust_1700000000000_abc123",
		Entries: []dto.EntryRequest{
			{Kind: domain.EntrySell, ItemType: domain.Rani, Weight: decimal.NewFromInt(5), MetalOnly: true},
		},
	}
	w := suite.authorizedRequest(http.MethodPost, "/api/v1/transactions", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	suite.mockTransactionService.On("GetTransactionByID", mock.Anything, "txn_missing").
		Return(nil, apperrors.NewNotFoundError("transaction not found")).Once()

	w := suite.authorizedRequest(http.MethodGet, "/api/v1/transactions/txn_missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_Success() {
	suite.mockTransactionService.On("DeleteTransaction", mock.Anything, "txn_1700000000000_def456").
		Return(nil).Once()

	w := suite.authorizedRequest(http.MethodDelete, "/api/v1/transactions/txn_1700000000000_def456", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_InconsistentState() {
	suite.mockTransactionService.On("DeleteTransaction", mock.Anything, "txn_1700000000000_def456").
		Return(apperrors.ErrInconsistentState).Once()

	w := suite.authorizedRequest(http.MethodDelete, "/api/v1/transactions/txn_1700000000000_def456", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/txn_1700000000000_def456", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "GetTransactionByID", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
