package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// stockHandler handles HTTP requests for the stock sub-ledger.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

// registerStockRoutes registers the stock sub-ledger routes.
func registerStockRoutes(rg *gin.RouterGroup, ss portssvc.StockSvcFacade) {
	h := newStockHandler(ss)

	stock := rg.Group("/stock")
	{
		stock.POST("", h.addLot)
		stock.GET("/:denomination", h.listLots)
	}
}

// addLot godoc
// @Summary Add a stock lot
// @Description Records an initial lot of a stock-tracked denomination outside any transaction
// @Tags stock
// @Accept json
// @Produce json
// @Param lot body dto.AddStockLotRequest true "Lot details"
// @Success 201 {object} domain.StockLot
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to add stock lot"
// @Security BearerAuth
// @Router /stock [post]
func (h *stockHandler) addLot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddStockLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddLot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	lot, err := h.stockService.AddLot(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add stock lot in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add stock lot"})
		}
		return
	}

	c.JSON(http.StatusCreated, lot)
}

// listLots godoc
// @Summary List on-hand lots of a denomination
// @Description Returns lots in FIFO order, oldest first
// @Tags stock
// @Produce json
// @Param denomination path string true "Denomination (rani or rupu)"
// @Success 200 {array} domain.StockLot
// @Failure 400 {object} map[string]string "Denomination is not stock tracked"
// @Failure 500 {object} map[string]string "Failed to list stock lots"
// @Security BearerAuth
// @Router /stock/{denomination} [get]
func (h *stockHandler) listLots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	denomination := domain.Denomination(c.Param("denomination"))

	lots, err := h.stockService.ListLotsByType(c.Request.Context(), denomination)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list stock lots", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock lots"})
		}
		return
	}

	c.JSON(http.StatusOK, lots)
}
