package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService    portssvc.CustomerSvcFacade
	transactionService portssvc.TransactionSvcFacade
	rateCutService     portssvc.RateCutSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade, ts portssvc.TransactionSvcFacade, rs portssvc.RateCutSvcFacade) *customerHandler {
	return &customerHandler{
		customerService:    cs,
		transactionService: ts,
		rateCutService:     rs,
	}
}

// registerCustomerRoutes registers customer routes, including the customer-scoped
// transaction, ledger and rate-cut reads.
func registerCustomerRoutes(rg *gin.RouterGroup, cs portssvc.CustomerSvcFacade, ts portssvc.TransactionSvcFacade, rs portssvc.RateCutSvcFacade) {
	h := newCustomerHandler(cs, ts, rs)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.GET("/:customerID/balance", h.getCustomerBalance)
		customers.GET("/:customerID/ledger", h.getCustomerLedger)
		customers.GET("/:customerID/transactions", h.listCustomerTransactions)
		customers.POST("/:customerID/rate-cuts", h.applyRateCut)
		customers.GET("/:customerID/rate-cuts", h.listRateCuts)
		customers.DELETE("/:customerID/rate-cuts/:denomination", h.deleteLatestRateCut)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Description Creates a customer with zero balances
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create customer"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create customer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse
// @Failure 500 {object} map[string]string "Failed to list customers"
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}

	out := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		out[i] = dto.ToCustomerResponse(&customers[i])
	}
	c.JSON(http.StatusOK, out)
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve customer"
// @Security BearerAuth
// @Router /customers/{customerID} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to get customer from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// getCustomerBalance godoc
// @Summary Get a customer's open position
// @Description Returns the money balance and per-denomination metal balances
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.BalanceSnapshot
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Security BearerAuth
// @Router /customers/{customerID}/balance [get]
func (h *customerHandler) getCustomerBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	snapshot, err := h.customerService.GetCustomerBalance(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to get customer balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// getCustomerLedger godoc
// @Summary Get a customer's money-movement history
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {array} domain.LedgerEntry
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Security BearerAuth
// @Router /customers/{customerID}/ledger [get]
func (h *customerHandler) getCustomerLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	entries, err := h.customerService.GetCustomerLedger(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to get customer ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, entries)
}

// listCustomerTransactions godoc
// @Summary List a customer's transactions
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {array} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /customers/{customerID}/transactions [get]
func (h *customerHandler) listCustomerTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	txns, err := h.transactionService.ListTransactionsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to list customer transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}
