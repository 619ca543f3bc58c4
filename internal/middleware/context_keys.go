package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type so our context values cannot collide with
// values set by other packages.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	merchantIDKey = contextKey("merchantID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It falls back to the default logger when none is present, so
// services can log safely from any call site.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetMerchantIDFromContext retrieves the authenticated merchant id set by the
// auth middleware.
func GetMerchantIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(merchantIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id, true
		}
	}
	return "", false
}
