package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/SscSPs/bullion_books_app/internal/dto"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Rate-cut handlers live on the customerHandler since every route is
// customer-scoped.

// applyRateCut godoc
// @Summary Apply a rate cut
// @Description Converts part of the customer's metal balance into money balance at the quoted rate
// @Tags rate-cuts
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param cut body dto.ApplyRateCutRequest true "Rate cut details"
// @Success 201 {object} domain.RateCut
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to apply rate cut"
// @Security BearerAuth
// @Router /customers/{customerID}/rate-cuts [post]
func (h *customerHandler) applyRateCut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.ApplyRateCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyRateCut", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cut, err := h.rateCutService.ApplyRateCut(c.Request.Context(), customerID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		default:
			logger.Error("Failed to apply rate cut in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply rate cut"})
		}
		return
	}

	c.JSON(http.StatusCreated, cut)
}

// rateCutListResponse pairs the audit rows with the per-denomination lock dates.
type rateCutListResponse struct {
	Cuts      []domain.RateCut                  `json:"cuts"`
	LockDates map[domain.Denomination]time.Time `json:"lockDates"`
}

// listRateCuts godoc
// @Summary List a customer's rate cuts
// @Tags rate-cuts
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} rateCutListResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to list rate cuts"
// @Security BearerAuth
// @Router /customers/{customerID}/rate-cuts [get]
func (h *customerHandler) listRateCuts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	cuts, locks, err := h.rateCutService.ListRateCuts(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to list rate cuts", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rate cuts"})
		}
		return
	}

	c.JSON(http.StatusOK, rateCutListResponse{Cuts: cuts, LockDates: locks})
}

// deleteLatestRateCut godoc
// @Summary Reverse the latest rate cut
// @Description Reverses the most recent cut for the denomination and recomputes the lock date
// @Tags rate-cuts
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param denomination path string true "Denomination (gold999, gold995 or silver)"
// @Success 204 "Reversed"
// @Failure 400 {object} map[string]string "Denomination cannot be rate cut"
// @Failure 404 {object} map[string]string "Customer or rate cut not found"
// @Failure 500 {object} map[string]string "Failed to delete rate cut"
// @Security BearerAuth
// @Router /customers/{customerID}/rate-cuts/{denomination} [delete]
func (h *customerHandler) deleteLatestRateCut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")
	denomination := domain.Denomination(c.Param("denomination"))

	err := h.rateCutService.DeleteLatestRateCut(c.Request.Context(), customerID, denomination)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete rate cut in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rate cut"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
