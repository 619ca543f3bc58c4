package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// inventoryHandler handles HTTP requests for inventory reconstruction.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers the inventory routes.
func registerInventoryRoutes(rg *gin.RouterGroup, is portssvc.InventorySvcFacade) {
	h := newInventoryHandler(is)

	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.reconstruct)
		inventory.PUT("/base", h.setBase)
	}
}

// reconstruct godoc
// @Summary Reconstruct current inventory
// @Description Derives current on-hand money and metal from the base figure, customer balances and all transactions
// @Tags inventory
// @Produce json
// @Success 200 {object} domain.InventorySnapshot
// @Failure 500 {object} map[string]string "Failed to reconstruct inventory"
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) reconstruct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.inventoryService.Reconstruct(c.Request.Context())
	if err != nil {
		logger.Error("Failed to reconstruct inventory", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconstruct inventory"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// setBase godoc
// @Summary Set the base inventory
// @Description Stores the counted stock, adjusted so an immediate reconstruction returns the counted figures
// @Tags inventory
// @Accept json
// @Produce json
// @Param inventory body dto.SetBaseInventoryRequest true "Counted stock"
// @Success 200 {object} domain.BaseInventory
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 500 {object} map[string]string "Failed to set base inventory"
// @Security BearerAuth
// @Router /inventory/base [put]
func (h *inventoryHandler) setBase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetBaseInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetBaseInventory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	base, err := h.inventoryService.SetBaseInventory(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to set base inventory in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set base inventory"})
		return
	}

	c.JSON(http.StatusOK, base)
}
