package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/middleware"
)

// timelineHandler serves the audit activity feed.
type timelineHandler struct {
	timelineService portssvc.TimelineSvcFacade
}

func newTimelineHandler(ts portssvc.TimelineSvcFacade) *timelineHandler {
	return &timelineHandler{
		timelineService: ts,
	}
}

// registerTimelineRoutes registers routes related to the timeline.
func registerTimelineRoutes(rg *gin.RouterGroup, timelineService portssvc.TimelineSvcFacade) {
	h := newTimelineHandler(timelineService)
	rg.GET("/timeline", h.listRecentEvents)
}

// listRecentEvents godoc
// @Summary List recent timeline events
// @Description Retrieves the most recent lifecycle audit events, newest first
// @Tags timeline
// @Produce  json
// @Param   limit query int false "Maximum events to return (default 50)"
// @Success 200 {array} domain.TimelineEvent
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 500 {object} map[string]string "Failed to list timeline events"
// @Security BearerAuth
// @Router /timeline [get]
func (h *timelineHandler) listRecentEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			logger.Warn("Invalid timeline limit", slog.String("limit", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	events, err := h.timelineService.ListRecentEvents(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list timeline events", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list timeline events"})
		return
	}

	c.JSON(http.StatusOK, events)
}
