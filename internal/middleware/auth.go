package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/g2ix/basic-registration/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates staff tokens
// and stores the staff id, terminal id and role in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseStaffToken(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			} else if errors.Is(err, jwt.ErrTokenInvalidClaims) {
				msg = "Invalid token claims"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		ctx := context.WithValue(c.Request.Context(), staffIDKey, claims.StaffID())
		ctx = context.WithValue(ctx, terminalIDKey, claims.TerminalID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)

		enrichedLogger := logger.With(
			slog.String("staff_id", claims.StaffID()),
			slog.String("terminal_id", claims.TerminalID),
		)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}

// RequireRole aborts requests whose token does not grant role.
// It must run after AuthMiddleware.
func RequireRole(role domain.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		granted, ok := GetRoleFromContext(c)
		if !ok || !granted.Allows(role) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not permitted",
				slog.String("required", string(role)),
				slog.String("granted", string(granted)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
