package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/dto"
	"github.com/temple-trust/temple_finance_app/internal/middleware"
)

// reconciliationHandler handles HTTP requests for the reconciliation review.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

// registerReconciliationRoutes registers routes related to reconciliation.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	recon := rg.Group("/reconciliation")
	{
		recon.GET("", h.listItems)
		recon.GET("/stats", h.getStats)
		recon.POST("/:id/match", h.markMatched)
		recon.POST("/:id/exception", h.markException)
	}
}

// listItems godoc
// @Summary List reconciliation items
// @Description Projects donations and non-rejected expenses into uniform reconciliation items
// @Tags reconciliation
// @Produce  json
// @Param   filter query string false "Match state filter" Enums(all, matched, unmatched)
// @Success 200 {array} domain.ReconciliationItem
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list reconciliation items"
// @Security BearerAuth
// @Router /reconciliation [get]
func (h *reconciliationHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListReconciliationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.ReconciliationFilter(params.Filter)
	if filter == "" {
		filter = domain.FilterAll
	}

	items, err := h.reconciliationService.ListItems(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list reconciliation items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reconciliation items"})
		return
	}

	logger.Info("Reconciliation items listed", slog.Int("count", len(items)), slog.String("filter", string(filter)))
	c.JSON(http.StatusOK, items)
}

// getStats godoc
// @Summary Reconciliation queue statistics
// @Description Summarises the review queue: totals, recorded exception counts, and the derived missing-provider-ref count
// @Tags reconciliation
// @Produce  json
// @Success 200 {object} domain.ReconciliationStats
// @Failure 500 {object} map[string]string "Failed to compute reconciliation stats"
// @Security BearerAuth
// @Router /reconciliation/stats [get]
func (h *reconciliationHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.reconciliationService.Stats(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute reconciliation stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute reconciliation stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// markMatched godoc
// @Summary Mark an item as matched
// @Description Confirms an item against its external record. Donations move unmatched to matched; approved expenses settle as paid.
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID (donation or expense ID)"
// @Param   match body dto.MarkMatchedRequest false "External record reference"
// @Success 200 {object} domain.ReconciliationItem
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item already reconciled"
// @Failure 500 {object} map[string]string "Failed to mark item matched"
// @Security BearerAuth
// @Router /reconciliation/{id}/match [post]
func (h *reconciliationHandler) markMatched(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	var req dto.MarkMatchedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for MarkMatched", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Reviewer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("item_id", itemID), slog.String("reviewer_user_id", reviewerUserID))
	logger.Info("Received request to mark item matched")

	item, err := h.reconciliationService.MarkMatched(c.Request.Context(), itemID, req.MatchedWith, reviewerUserID)
	if err != nil {
		h.respondReviewError(c, logger, err, "Failed to mark item matched")
		return
	}

	logger.Info("Item marked matched successfully")
	c.JSON(http.StatusOK, item)
}

// markException godoc
// @Summary Classify an item as an exception
// @Description Attaches a typed exception to an unmatched donation and moves it into the exception state. Re-classifying overwrites the previous exception.
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID (donation ID)"
// @Param   exception body dto.MarkExceptionRequest true "Exception classification"
// @Success 200 {object} domain.ReconciliationItem
// @Failure 400 {object} map[string]string "Unknown exception type or missing detail"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item already matched"
// @Failure 500 {object} map[string]string "Failed to classify exception"
// @Security BearerAuth
// @Router /reconciliation/{id}/exception [post]
func (h *reconciliationHandler) markException(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	var req dto.MarkExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkException", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Reviewer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("item_id", itemID), slog.String("reviewer_user_id", reviewerUserID))
	logger.Info("Received request to classify exception", slog.String("exception_type", req.Type))

	item, err := h.reconciliationService.MarkException(c.Request.Context(), itemID, req.Type, req.Detail, reviewerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidExceptionType) || errors.Is(err, apperrors.ErrMissingDetail) {
			logger.Warn("Invalid exception classification", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.respondReviewError(c, logger, err, "Failed to classify exception")
		return
	}

	logger.Info("Exception classified successfully")
	c.JSON(http.StatusOK, item)
}

func (h *reconciliationHandler) respondReviewError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	if errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Reconciliation item not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	} else if errors.Is(err, apperrors.ErrAlreadyTerminal) || errors.Is(err, apperrors.ErrInvalidTransition) {
		logger.Warn("Item already reconciled", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Validation error on reconciliation review", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		logger.Error("Reconciliation review failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
