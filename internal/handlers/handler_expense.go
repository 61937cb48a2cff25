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

// expenseHandler handles HTTP requests related to expenses, including the
// approval lifecycle transitions.
type expenseHandler struct {
	expenseService   portssvc.ExpenseSvcFacade
	lifecycleService portssvc.ExpenseLifecycleSvc
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade, ls portssvc.ExpenseLifecycleSvc) *expenseHandler {
	return &expenseHandler{
		expenseService:   es,
		lifecycleService: ls,
	}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, lifecycleService portssvc.ExpenseLifecycleSvc) {
	h := newExpenseHandler(expenseService, lifecycleService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpenseByID)
		expenses.PATCH("/:id", h.updateExpense)
		expenses.POST("/:id/approve", h.approveExpense)
		expenses.POST("/:id/reject", h.rejectExpense)
		expenses.POST("/:id/pay", h.markExpensePaid)
	}
}

// createExpense godoc
// @Summary Record a new expense
// @Description Records an expense in the pending state, awaiting approval
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
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
	logger.Info("Received request to create expense", slog.String("category", req.Category))

	createdExpense, err := h.expenseService.CreateExpense(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating expense", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		}
		return
	}

	logger.Info("Expense created successfully", slog.String("expense_id", createdExpense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(createdExpense))
}

// getExpenseByID godoc
// @Summary Get an expense by ID
// @Description Retrieves details for a specific expense
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpenseByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense not found", slog.String("expense_id", expenseID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			logger.Error("Failed to get expense from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Retrieves expenses matching the optional filters, newest first
// @Tags expenses
// @Produce  json
// @Param   status query string false "Approval status" Enums(pending, approved, rejected, paid)
// @Param   category query string false "Expense category" Enums(maintenance, utilities, salaries, materials, events, other)
// @Param   from query string false "Expense date on/after (YYYY-MM-DD)"
// @Param   to query string false "Expense date on/before (YYYY-MM-DD)"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list expenses from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expenses"})
		return
	}

	expenseResponses := make([]dto.ExpenseResponse, len(expenses))
	for i, e := range expenses {
		expenseResponses[i] = dto.ToExpenseResponse(&e)
	}

	logger.Info("Expenses listed successfully", slog.Int("count", len(expenseResponses)))
	c.JSON(http.StatusOK, dto.ListExpensesResponse{Expenses: expenseResponses})
}

// updateExpense godoc
// @Summary Update an expense
// @Description Edits an expense's own fields. The amount can only change while the expense is pending.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Expense ID"
// @Param   expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to update expense"
// @Security BearerAuth
// @Router /expenses/{id} [patch]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("expense_id", expenseID), slog.String("updater_user_id", updaterUserID))

	updatedExpense, err := h.expenseService.UpdateExpense(c.Request.Context(), expenseID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating expense", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		}
		return
	}

	logger.Info("Expense updated successfully")
	c.JSON(http.StatusOK, dto.ToExpenseResponse(updatedExpense))
}

// approveExpense godoc
// @Summary Approve a pending expense
// @Description Transitions a pending expense to approved, stamping the approval date
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense is not pending"
// @Failure 500 {object} map[string]string "Failed to approve expense"
// @Security BearerAuth
// @Router /expenses/{id}/approve [post]
func (h *expenseHandler) approveExpense(c *gin.Context) {
	h.applyTransition(c, "approve", func(c *gin.Context, expenseID, userID string) (interface{}, error) {
		expense, err := h.lifecycleService.ApproveExpense(c.Request.Context(), expenseID, userID)
		if err != nil {
			return nil, err
		}
		return dto.ToExpenseResponse(expense), nil
	})
}

// rejectExpense godoc
// @Summary Reject a pending expense
// @Description Transitions a pending expense to rejected. The reason is mandatory and preserved on the record.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Expense ID"
// @Param   rejection body dto.RejectExpenseRequest true "Rejection reason"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Missing rejection reason"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense is not pending"
// @Failure 500 {object} map[string]string "Failed to reject expense"
// @Security BearerAuth
// @Router /expenses/{id}/reject [post]
func (h *expenseHandler) rejectExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RejectExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason is required"})
		return
	}

	h.applyTransition(c, "reject", func(c *gin.Context, expenseID, userID string) (interface{}, error) {
		expense, err := h.lifecycleService.RejectExpense(c.Request.Context(), expenseID, req.Reason, userID)
		if err != nil {
			return nil, err
		}
		return dto.ToExpenseResponse(expense), nil
	})
}

// markExpensePaid godoc
// @Summary Mark an approved expense as paid
// @Description Transitions an approved expense to paid. Paid is terminal.
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense is not approved"
// @Failure 500 {object} map[string]string "Failed to mark expense paid"
// @Security BearerAuth
// @Router /expenses/{id}/pay [post]
func (h *expenseHandler) markExpensePaid(c *gin.Context) {
	h.applyTransition(c, "pay", func(c *gin.Context, expenseID, userID string) (interface{}, error) {
		expense, err := h.lifecycleService.MarkExpensePaid(c.Request.Context(), expenseID, userID)
		if err != nil {
			return nil, err
		}
		return dto.ToExpenseResponse(expense), nil
	})
}

// applyTransition runs one lifecycle call with the shared error mapping.
func (h *expenseHandler) applyTransition(c *gin.Context, action string, fn func(c *gin.Context, expenseID, userID string) (interface{}, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("expense_id", expenseID), slog.String("action", action))
	logger.Info("Received expense lifecycle request")

	resp, err := fn(c, expenseID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense not found for transition")
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else if errors.Is(err, apperrors.ErrInvalidTransition) {
			logger.Warn("Invalid expense transition", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error on expense transition", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to apply expense transition", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " expense"})
		}
		return
	}

	logger.Info("Expense transition applied successfully")
	c.JSON(http.StatusOK, resp)
}
