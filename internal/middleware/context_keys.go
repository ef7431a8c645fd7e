package middleware

import (
	"context"
	"log/slog"

	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	staffIDKey    = contextKey("staffID")
	terminalIDKey = contextKey("terminalID")
	roleKey       = contextKey("role")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetUserIDFromContext retrieves the authenticated staff id from the request.
// It returns the staff id and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	staffID, ok := c.Request.Context().Value(staffIDKey).(string)
	if !ok || staffID == "" {
		return "", false
	}
	return staffID, true
}

// GetActorFromContext returns the staff member and terminal behind the request.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	staffID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	terminalID, _ := c.Request.Context().Value(terminalIDKey).(string)
	return domain.Actor{StaffID: staffID, TerminalID: terminalID}, true
}

// GetRoleFromContext returns the role granted by the request's token.
func GetRoleFromContext(c *gin.Context) (domain.StaffRole, bool) {
	role, ok := c.Request.Context().Value(roleKey).(domain.StaffRole)
	return role, ok
}
