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

// budgetRequestHandler handles HTTP requests related to budget requests.
type budgetRequestHandler struct {
	budgetRequestService portssvc.BudgetRequestSvcFacade
	lifecycleService     portssvc.BudgetRequestLifecycleSvc
}

// newBudgetRequestHandler creates a new budgetRequestHandler.
func newBudgetRequestHandler(bs portssvc.BudgetRequestSvcFacade, ls portssvc.BudgetRequestLifecycleSvc) *budgetRequestHandler {
	return &budgetRequestHandler{
		budgetRequestService: bs,
		lifecycleService:     ls,
	}
}

// registerBudgetRequestRoutes registers routes related to budget requests.
func registerBudgetRequestRoutes(rg *gin.RouterGroup, budgetRequestService portssvc.BudgetRequestSvcFacade, lifecycleService portssvc.BudgetRequestLifecycleSvc) {
	h := newBudgetRequestHandler(budgetRequestService, lifecycleService)

	requests := rg.Group("/budget-requests")
	{
		requests.POST("", h.createBudgetRequest)
		requests.GET("", h.listBudgetRequests)
		requests.GET("/:id", h.getBudgetRequestByID)
		requests.PATCH("/:id", h.updateBudgetRequest)
		requests.POST("/:id/approve", h.approveBudgetRequest)
		requests.POST("/:id/reject", h.rejectBudgetRequest)
	}
}

// createBudgetRequest godoc
// @Summary Raise a new budget request
// @Description Records a community's budget request in the pending state
// @Tags budget-requests
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateBudgetRequestRequest true "Budget request details"
// @Success 201 {object} dto.BudgetRequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create budget request"
// @Security BearerAuth
// @Router /budget-requests [post]
func (h *budgetRequestHandler) createBudgetRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudgetRequest", slog.String("error", err.Error()))
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
	logger.Info("Received request to create budget request", slog.String("title", req.Title))

	created, err := h.budgetRequestService.CreateBudgetRequest(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating budget request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create budget request in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget request"})
		}
		return
	}

	logger.Info("Budget request created successfully", slog.String("request_id", created.RequestID))
	c.JSON(http.StatusCreated, dto.ToBudgetRequestResponse(created))
}

// getBudgetRequestByID godoc
// @Summary Get a budget request by ID
// @Description Retrieves details for a specific budget request
// @Tags budget-requests
// @Produce  json
// @Param   id path string true "Budget Request ID"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 404 {object} map[string]string "Budget request not found"
// @Failure 500 {object} map[string]string "Failed to retrieve budget request"
// @Security BearerAuth
// @Router /budget-requests/{id} [get]
func (h *budgetRequestHandler) getBudgetRequestByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	request, err := h.budgetRequestService.GetBudgetRequestByID(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget request not found", slog.String("request_id", requestID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget request not found"})
		} else {
			logger.Error("Failed to get budget request from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budget request"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetRequestResponse(request))
}

// listBudgetRequests godoc
// @Summary List budget requests
// @Description Retrieves budget requests matching the optional filters, newest first
// @Tags budget-requests
// @Produce  json
// @Param   status query string false "Decision status" Enums(pending, approved, rejected)
// @Param   communityID query string false "Requesting community"
// @Success 200 {object} dto.ListBudgetRequestsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list budget requests"
// @Security BearerAuth
// @Router /budget-requests [get]
func (h *budgetRequestHandler) listBudgetRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListBudgetRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListBudgetRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	requests, err := h.budgetRequestService.ListBudgetRequests(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list budget requests from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budget requests"})
		return
	}

	requestResponses := make([]dto.BudgetRequestResponse, len(requests))
	for i, r := range requests {
		requestResponses[i] = dto.ToBudgetRequestResponse(&r)
	}

	logger.Info("Budget requests listed successfully", slog.Int("count", len(requestResponses)))
	c.JSON(http.StatusOK, dto.ListBudgetRequestsResponse{BudgetRequests: requestResponses})
}

// updateBudgetRequest godoc
// @Summary Update a pending budget request
// @Description Edits a pending budget request's own fields. Decided requests are immutable.
// @Tags budget-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget Request ID"
// @Param   request body dto.UpdateBudgetRequestRequest true "Fields to update"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Budget request not found"
// @Failure 409 {object} map[string]string "Budget request already decided"
// @Failure 500 {object} map[string]string "Failed to update budget request"
// @Security BearerAuth
// @Router /budget-requests/{id} [patch]
func (h *budgetRequestHandler) updateBudgetRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.UpdateBudgetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBudgetRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("request_id", requestID), slog.String("updater_user_id", updaterUserID))
	logger.Info("Received request to update budget request")

	updated, err := h.budgetRequestService.UpdateBudgetRequest(c.Request.Context(), requestID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget request not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget request not found"})
		} else if errors.Is(err, apperrors.ErrInvalidTransition) {
			logger.Warn("Budget request already decided", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating budget request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update budget request in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget request"})
		}
		return
	}

	logger.Info("Budget request updated successfully")
	c.JSON(http.StatusOK, dto.ToBudgetRequestResponse(updated))
}

// approveBudgetRequest godoc
// @Summary Approve a pending budget request
// @Description Decides a pending budget request as approved. The approved amount defaults to the requested amount when omitted.
// @Tags budget-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget Request ID"
// @Param   decision body dto.ApproveBudgetRequestRequest false "Approval details"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Budget request not found"
// @Failure 409 {object} map[string]string "Budget request already decided"
// @Failure 500 {object} map[string]string "Failed to approve budget request"
// @Security BearerAuth
// @Router /budget-requests/{id}/approve [post]
func (h *budgetRequestHandler) approveBudgetRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	// The body is optional; an empty body means "approve as requested".
	var req dto.ApproveBudgetRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ApproveBudgetRequest", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("request_id", requestID), slog.String("approver_user_id", approverUserID))
	logger.Info("Received request to approve budget request")

	decided, err := h.lifecycleService.ApproveBudgetRequest(c.Request.Context(), requestID, req, approverUserID)
	if err != nil {
		h.respondDecisionError(c, logger, err, "approve")
		return
	}

	logger.Info("Budget request approved successfully")
	c.JSON(http.StatusOK, dto.ToBudgetRequestResponse(decided))
}

// rejectBudgetRequest godoc
// @Summary Reject a pending budget request
// @Description Decides a pending budget request as rejected. The reason is mandatory.
// @Tags budget-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget Request ID"
// @Param   rejection body dto.RejectBudgetRequestRequest true "Rejection reason"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 400 {object} map[string]string "Missing rejection reason"
// @Failure 404 {object} map[string]string "Budget request not found"
// @Failure 409 {object} map[string]string "Budget request already decided"
// @Failure 500 {object} map[string]string "Failed to reject budget request"
// @Security BearerAuth
// @Router /budget-requests/{id}/reject [post]
func (h *budgetRequestHandler) rejectBudgetRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.RejectBudgetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectBudgetRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason is required"})
		return
	}

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("request_id", requestID), slog.String("approver_user_id", approverUserID))
	logger.Info("Received request to reject budget request")

	decided, err := h.lifecycleService.RejectBudgetRequest(c.Request.Context(), requestID, req.Reason, approverUserID)
	if err != nil {
		h.respondDecisionError(c, logger, err, "reject")
		return
	}

	logger.Info("Budget request rejected successfully")
	c.JSON(http.StatusOK, dto.ToBudgetRequestResponse(decided))
}

func (h *budgetRequestHandler) respondDecisionError(c *gin.Context, logger *slog.Logger, err error, action string) {
	if errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Budget request not found for decision")
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget request not found"})
	} else if errors.Is(err, apperrors.ErrInvalidTransition) {
		logger.Warn("Budget request already decided", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Validation error deciding budget request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		logger.Error("Failed to decide budget request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " budget request"})
	}
}
