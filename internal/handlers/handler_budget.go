package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/dto"
	"github.com/temple-trust/temple_finance_app/internal/middleware"
)

// budgetHandler handles HTTP requests related to budget collection targets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

// registerBudgetRoutes registers routes related to budget targets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
	}
}

// createBudget godoc
// @Summary Create a budget target
// @Description Creates a collection target for a category over a period
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetTargetRequest true "Budget target details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create budget"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create budget", slog.String("category", req.Category))

	created, err := h.budgetService.CreateBudget(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating budget", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create budget in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		}
		return
	}

	logger.Info("Budget created successfully", slog.String("budget_id", created.BudgetID))
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(created))
}

// listBudgets godoc
// @Summary List budget targets
// @Description Retrieves budget targets, optionally scoped to a category or period window
// @Tags budgets
// @Produce  json
// @Param   category query string false "Budget category"
// @Param   from query string false "Period overlapping on/after (YYYY-MM-DD)"
// @Param   to query string false "Period overlapping on/before (YYYY-MM-DD)"
// @Success 200 {object} dto.ListBudgetsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list budgets"
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListBudgets", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list budgets from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budgets"})
		return
	}

	budgetResponses := make([]dto.BudgetResponse, len(budgets))
	for i, b := range budgets {
		budgetResponses[i] = dto.ToBudgetResponse(&b)
	}

	c.JSON(http.StatusOK, dto.ListBudgetsResponse{Budgets: budgetResponses})
}
