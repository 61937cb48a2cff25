package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/temple-trust/temple_finance_app/internal/middleware"
	"github.com/temple-trust/temple_finance_app/internal/platform/events"
)

// sseKeepAliveInterval is how often a comment line is written to keep idle
// connections open through proxies.
const sseKeepAliveInterval = 30 * time.Second

// eventsHandler streams table change notifications over SSE.
type eventsHandler struct {
	notifier *events.Notifier
}

func newEventsHandler(n *events.Notifier) *eventsHandler {
	return &eventsHandler{notifier: n}
}

// registerEventsRoutes registers the change notification stream.
func registerEventsRoutes(rg *gin.RouterGroup, notifier *events.Notifier) {
	h := newEventsHandler(notifier)
	rg.GET("/events/stream", h.stream)
}

// stream godoc
// @Summary Stream change notifications
// @Description Server-sent events stream of table change notifications. Events carry only the table name and operation; clients re-query on receipt.
// @Tags events
// @Produce  text/event-stream
// @Success 200 {string} string "SSE stream"
// @Security BearerAuth
// @Router /events/stream [get]
func (h *eventsHandler) stream(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ch, unsubscribe := h.notifier.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	logger.Info("Change notification stream opened")

	keepAlive := time.NewTicker(sseKeepAliveInterval)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case evt, ok := <-ch:
			if !ok {
				return false
			}
			payload, err := json.Marshal(evt)
			if err != nil {
				logger.Error("Failed to marshal change event", slog.String("error", err.Error()))
				return true
			}
			c.SSEvent("change", string(payload))
			return true
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": keep-alive\n\n")); err != nil {
				return false
			}
			return true
		}
	})

	logger.Info("Change notification stream closed")
}
