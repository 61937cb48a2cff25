package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("", h.generateReport)
		reports.GET("/quick/:preset", h.generateQuickReport)
		reports.GET("/export", h.exportReportCSV)
	}
}

const reportDateLayout = "2006-01-02"

// parseReportWindow reads the from/to query params. To is extended to the end
// of its day so a date-only window is inclusive.
func parseReportWindow(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse(reportDateLayout, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid or missing 'from' date, expected YYYY-MM-DD")
	}
	to, err := time.Parse(reportDateLayout, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid or missing 'to' date, expected YYYY-MM-DD")
	}
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, to, nil
}

// generateReport godoc
// @Summary Generate a finance report
// @Description Builds the full rollup for [from, to]: totals, source and category breakdowns, top donors and budget progress
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} domain.FinanceReport
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports [get]
func (h *reportingHandler) generateReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseReportWindow(c)
	if err != nil {
		logger.Warn("Invalid report window", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Received request to generate report",
		slog.Time("from", from), slog.Time("to", to))

	report, err := h.reportingService.Generate(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error generating report", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// generateQuickReport godoc
// @Summary Generate a preset finance report
// @Description Builds the rollup for a calendar preset window relative to today
// @Tags reports
// @Produce  json
// @Param   preset path string true "Report preset" Enums(monthly, quarterly, annual, trailing-12-months)
// @Success 200 {object} domain.FinanceReport
// @Failure 400 {object} map[string]string "Unknown preset"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/quick/{preset} [get]
func (h *reportingHandler) generateQuickReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	preset := domain.ReportPreset(c.Param("preset"))

	logger.Info("Received request for quick report", slog.String("preset", string(preset)))

	report, err := h.reportingService.GenerateQuick(c.Request.Context(), preset, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Unknown report preset", slog.String("preset", string(preset)))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate quick report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// exportReportCSV godoc
// @Summary Export a finance report as CSV
// @Description Generates the report for [from, to] and serialises it into the fixed-section CSV layout
// @Tags reports
// @Produce  text/csv
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD, inclusive)"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Security BearerAuth
// @Router /reports/export [get]
func (h *reportingHandler) exportReportCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseReportWindow(c)
	if err != nil {
		logger.Warn("Invalid report window for export", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.Generate(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error exporting report", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate report for export", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
		}
		return
	}

	csvBytes, err := h.reportingService.ExportCSV(report)
	if err != nil {
		logger.Error("Failed to serialise report CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
		return
	}

	filename := "finance_report_" + from.Format(reportDateLayout) + "_" + to.Format(reportDateLayout) + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", csvBytes)
}
