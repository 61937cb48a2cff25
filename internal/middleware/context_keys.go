package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns the default logger when none is present (e.g. in tests).
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
		return "", false
	}
	// Check the request context as well; the auth middleware stores it there too.
	if userIDVal := c.Request.Context().Value(userIDKey); userIDVal != nil {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
	}
	return "", false
}
