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

// donationHandler handles HTTP requests related to donations.
type donationHandler struct {
	donationService portssvc.DonationSvcFacade
}

// newDonationHandler creates a new donationHandler.
func newDonationHandler(ds portssvc.DonationSvcFacade) *donationHandler {
	return &donationHandler{
		donationService: ds,
	}
}

// registerDonationRoutes registers routes related to donations.
func registerDonationRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade) {
	h := newDonationHandler(donationService)

	donations := rg.Group("/donations")
	{
		donations.POST("", h.createDonation)
		donations.GET("", h.listDonations)
		donations.GET("/:id", h.getDonationByID)
		donations.PATCH("/:id", h.updateDonation)
	}
}

// createDonation godoc
// @Summary Record a new donation
// @Description Records a donation; the net amount is derived server-side from gross minus fees
// @Tags donations
// @Accept  json
// @Produce  json
// @Param   donation body dto.CreateDonationRequest true "Donation details"
// @Success 201 {object} dto.DonationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create donation"
// @Security BearerAuth
// @Router /donations [post]
func (h *donationHandler) createDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDonation", slog.String("error", err.Error()))
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
	logger.Info("Received request to create donation", slog.String("source", req.Source))

	createdDonation, err := h.donationService.CreateDonation(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating donation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create donation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation"})
		}
		return
	}

	logger.Info("Donation created successfully", slog.String("donation_id", createdDonation.DonationID))
	c.JSON(http.StatusCreated, dto.ToDonationResponse(createdDonation))
}

// getDonationByID godoc
// @Summary Get a donation by ID
// @Description Retrieves details for a specific donation
// @Tags donations
// @Produce  json
// @Param   id path string true "Donation ID"
// @Success 200 {object} dto.DonationResponse
// @Failure 404 {object} map[string]string "Donation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve donation"
// @Security BearerAuth
// @Router /donations/{id} [get]
func (h *donationHandler) getDonationByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	donationID := c.Param("id")

	logger = logger.With(slog.String("donation_id", donationID))
	logger.Info("Received request to get donation by ID")

	donation, err := h.donationService.GetDonationByID(c.Request.Context(), donationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Donation not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			logger.Error("Failed to get donation from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDonationResponse(donation))
}

// listDonations godoc
// @Summary List donations
// @Description Retrieves donations matching the optional filters, newest received first
// @Tags donations
// @Produce  json
// @Param   status query string false "Payment status" Enums(completed, pending, failed)
// @Param   reconStatus query string false "Reconciliation status" Enums(unmatched, matched, exception)
// @Param   source query string false "Donation source" Enums(web, hundi, manual)
// @Param   from query string false "Received on/after (YYYY-MM-DD)"
// @Param   to query string false "Received on/before (YYYY-MM-DD)"
// @Success 200 {object} dto.ListDonationsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list donations"
// @Security BearerAuth
// @Router /donations [get]
func (h *donationHandler) listDonations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDonationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListDonations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	donations, err := h.donationService.ListDonations(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list donations from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list donations"})
		return
	}

	donationResponses := make([]dto.DonationResponse, len(donations))
	for i, d := range donations {
		donationResponses[i] = dto.ToDonationResponse(&d)
	}

	logger.Info("Donations listed successfully", slog.Int("count", len(donationResponses)))
	c.JSON(http.StatusOK, dto.ListDonationsResponse{Donations: donationResponses})
}

// updateDonation godoc
// @Summary Update a donation
// @Description Edits a donation's own fields; the net amount is re-derived. Reconciliation state is untouched.
// @Tags donations
// @Accept  json
// @Produce  json
// @Param   id path string true "Donation ID"
// @Param   donation body dto.UpdateDonationRequest true "Fields to update"
// @Success 200 {object} dto.DonationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Donation not found"
// @Failure 500 {object} map[string]string "Failed to update donation"
// @Security BearerAuth
// @Router /donations/{id} [patch]
func (h *donationHandler) updateDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	donationID := c.Param("id")

	var req dto.UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDonation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("donation_id", donationID), slog.String("updater_user_id", updaterUserID))
	logger.Info("Received request to update donation")

	updatedDonation, err := h.donationService.UpdateDonation(c.Request.Context(), donationID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Donation not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating donation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update donation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation"})
		}
		return
	}

	logger.Info("Donation updated successfully")
	c.JSON(http.StatusOK, dto.ToDonationResponse(updatedDonation))
}
